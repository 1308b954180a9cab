package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

// Group is one strategy bucket of the dashboard.
type Group struct {
	Strategy string
	Rows     []QuoteMetrics
}

// GroupedMetrics keeps strategies in first-occurrence order. It marshals to a JSON object
// whose keys follow that order.
type GroupedMetrics []Group

// GroupByStrategy partitions rows by Strategy (first-occurrence order) and sorts each group by ticker.
func GroupByStrategy(rows []QuoteMetrics) GroupedMetrics {
	index := make(map[string]int)
	var out GroupedMetrics
	for _, r := range rows {
		i, ok := index[r.Strategy]
		if !ok {
			i = len(out)
			index[r.Strategy] = i
			out = append(out, Group{Strategy: r.Strategy})
		}
		out[i].Rows = append(out[i].Rows, r)
	}
	for i := range out {
		sort.SliceStable(out[i].Rows, func(a, b int) bool {
			return out[i].Rows[a].Ticker < out[i].Rows[b].Ticker
		})
	}
	return out
}

// Get returns the rows for strategy, if present.
func (g GroupedMetrics) Get(strategy string) ([]QuoteMetrics, bool) {
	for _, grp := range g {
		if grp.Strategy == strategy {
			return grp.Rows, true
		}
	}
	return nil, false
}

// Keys returns the strategies in order.
func (g GroupedMetrics) Keys() []string {
	keys := make([]string, 0, len(g))
	for _, grp := range g {
		keys = append(keys, grp.Strategy)
	}
	return keys
}

func (g GroupedMetrics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, grp := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(grp.Strategy)
		if err != nil {
			return nil, err
		}
		rows := grp.Rows
		if rows == nil {
			rows = []QuoteMetrics{}
		}
		v, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (g *GroupedMetrics) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil { // {
		return err
	}
	var out GroupedMetrics
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var rows []QuoteMetrics
		if err := dec.Decode(&rows); err != nil {
			return err
		}
		out = append(out, Group{Strategy: key, Rows: rows})
	}
	if _, err := dec.Token(); err != nil { // }
		return err
	}
	*g = out
	return nil
}

// DashboardResult is the outcome of one aggregation cycle. Partial data is normal:
// failed upstream calls appear in Errors and leave the matching fields nil.
type DashboardResult struct {
	Grouped     GroupedMetrics `json:"grouped"`
	Errors      []AssetError   `json:"errors"`
	GeneratedAt time.Time      `json:"updatedAt"`
}
