package presentation

import (
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"PortfolioPulse/internal/domain/models"
)

// AllClusters selects every strategy group.
const AllClusters = "ALL"

type RowView struct {
	Ticker   string
	Name     string
	Exchange string
	Price    string
	Low52    string
	LowPct   string
	High52   string
	HighPct  string
	PE       string
	EVEBITDA string
	// ShortWindow marks rows whose range covers fewer bars than a trading year.
	ShortWindow bool
}

type GroupView struct {
	Cluster string
	Rows    []RowView
}

// DashboardView is everything the dashboard page renders.
type DashboardView struct {
	Clusters  []string
	Selected  string
	Groups    []GroupView
	Errors    []models.AssetError
	UpdatedAt string
	// Error is a request-level failure; Groups is empty when it is set.
	Error string
}

// tradingYear is the bar count treated as a full 52-week window.
const tradingYear = 250

// BuildDashboardView derives the page model. Clusters are sorted for the selector; "ALL" (or an empty
// selection) shows every group in that order, any other label shows only that group, with no rows if unknown.
func BuildDashboardView(res *models.DashboardResult, selected string) DashboardView {
	if selected == "" {
		selected = AllClusters
	}
	v := DashboardView{Selected: selected}
	if res == nil {
		return v
	}

	v.Clusters = res.Grouped.Keys()
	collate.New(language.English).SortStrings(v.Clusters)
	v.Errors = res.Errors
	if !res.GeneratedAt.IsZero() {
		v.UpdatedAt = res.GeneratedAt.UTC().Format(time.RFC1123)
	}

	if selected == AllClusters {
		for _, c := range v.Clusters {
			rows, _ := res.Grouped.Get(c)
			v.Groups = append(v.Groups, GroupView{Cluster: c, Rows: rowViews(rows)})
		}
		return v
	}
	rows, _ := res.Grouped.Get(selected)
	v.Groups = []GroupView{{Cluster: selected, Rows: rowViews(rows)}}
	return v
}

func rowViews(rows []models.QuoteMetrics) []RowView {
	out := make([]RowView, 0, len(rows))
	for _, r := range rows {
		out = append(out, RowView{
			Ticker:      r.Ticker,
			Name:        r.Name,
			Exchange:    r.Exchange,
			Price:       FormatPrice(r.Price, r.Currency),
			Low52:       FormatNumber(r.Low52, PriceDecimals),
			LowPct:      FormatPct(r.Low52DiffPct),
			High52:      FormatNumber(r.High52, PriceDecimals),
			HighPct:     FormatPct(r.High52DiffPct),
			PE:          FormatNumber(r.PERatio, RatioDecimals),
			EVEBITDA:    FormatNumber(r.EVToEBITDA, RatioDecimals),
			ShortWindow: r.WindowPoints > 0 && r.WindowPoints < tradingYear,
		})
	}
	return out
}
