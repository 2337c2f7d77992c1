package domain

import "time"

// PageView is one recorded request for a public page.
type PageView struct {
	Path        string
	VisitorHash string
	Referrer    string
	CreatedAt   time.Time
}

// DailyCount is one point of a per-day series.
type DailyCount struct {
	Day   string // YYYY-MM-DD
	Value int64
}

// PathCount is one row of the top pages table.
type PathCount struct {
	Path  string
	Value int64
}

// AnalyticsSummary is the data behind the analytics panel.
type AnalyticsSummary struct {
	Since          time.Time
	TotalVisitors  int64
	TotalPageviews int64
	DailyVisitors  []DailyCount
	DailyPageviews []DailyCount
	TopPaths       []PathCount
}

// HasData reports whether any traffic was recorded in the window.
func (s AnalyticsSummary) HasData() bool {
	return s.TotalVisitors > 0 || s.TotalPageviews > 0
}
