package ui

import (
	"fmt"
	"net/http"

	"studio-site/internal/domain"
	"studio-site/internal/service/analytics"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) AnalyticsPage(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Analytics.Summary(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	page := adminPage{Title: "Analytics", Active: "analytics", Refresh: analytics.RefreshInterval}
	stats := Div(Class("stat-grid"),
		statCard("Live visitors", itoa(analytics.LiveVisitors())),
		statCard("Visitors (30 days)", fmt.Sprintf("%d", summary.TotalVisitors)),
		statCard("Page views (30 days)", fmt.Sprintf("%d", summary.TotalPageviews)),
	)
	if !summary.HasData() {
		h.renderAdmin(w, r, page, stats, emptyStateCard("No traffic recorded in the last 30 days.", "", ""))
		return
	}

	pathRows := make([]Node, len(summary.TopPaths))
	for i, p := range summary.TopPaths {
		pathRows[i] = Tr(Td(Code(Text(p.Path))), Td(Text(fmt.Sprintf("%d", p.Value))))
	}
	h.renderAdmin(w, r, page,
		stats,
		H2(Text("Daily visitors")),
		barChart(summary.DailyVisitors),
		H2(Text("Daily page views")),
		barChart(summary.DailyPageviews),
		H2(Text("Top pages")),
		table([]string{"Path", "Views"}, pathRows),
	)
}

func statCard(label, value string) Node {
	return Div(Class(cardClass("stat")), Strong(Class("stat-value"), Text(value)), Span(Class(mutedClass()), Text(label)))
}

// barChart draws a series as CSS bars scaled to its largest value.
func barChart(series []domain.DailyCount) Node {
	var peak int64 = 1
	for _, d := range series {
		if d.Value > peak {
			peak = d.Value
		}
	}
	bars := make([]Node, len(series))
	for i, d := range series {
		pct := d.Value * 100 / peak
		bars[i] = Div(Class("bar"), Title(fmt.Sprintf("%s: %d", d.Day, d.Value)),
			Span(Class("bar-fill"), Style(fmt.Sprintf("height:%d%%", pct))),
		)
	}
	return Div(Class(cardClass("chart")), Group(bars))
}
