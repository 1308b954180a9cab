package presentation

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// BriefView is the brief page model.
type BriefView struct {
	Tickers  []string
	DaysBack int
	HTML     template.HTML
	Error    string
}

func RenderDashboard(w io.Writer, v DashboardView) error {
	return pages.ExecuteTemplate(w, "dashboard.html", v)
}

func RenderBriefPage(w io.Writer, v BriefView) error {
	return pages.ExecuteTemplate(w, "brief.html", v)
}
