package models

import "time"

// PlatformStats is the admin dashboard aggregate.
type PlatformStats struct {
	TotalUsers      int `json:"totalUsers"`
	Vendors         int `json:"vendors"`
	Buyers          int `json:"buyers"`
	Admins          int `json:"admins"`
	TotalQuotes     int `json:"totalQuotes"`
	CompletedQuotes int `json:"completedQuotes"`
	Revenue         int `json:"revenue"`
}

// UserMetrics are per-user counters over a date range.
type UserMetrics struct {
	RequestsSent           int `json:"requestsSent"`
	QuotesReceived         int `json:"quotesReceived"`
	QuotesResponded        int `json:"quotesResponded"`
	LeadsAvailableInPeriod int `json:"leadsAvailableInPeriod"`
}

type UserStats struct {
	UID     string      `json:"uid"`
	Role    Role        `json:"role"`
	Start   time.Time   `json:"start"`
	End     time.Time   `json:"end"`
	Metrics UserMetrics `json:"metrics"`
}
