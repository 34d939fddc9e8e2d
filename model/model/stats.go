package model

// ResponseStats holds aggregates over all stored responses. Means are
// exact here; rounding happens only at presentation. A rating with
// zero observations reports a mean of 0 by policy, never NaN.
type ResponseStats struct {
	AverageRatings map[string]float64 `json:"average_ratings"`
	TotalResponses int64              `json:"total_responses"`
}

// GroupStat holds the same aggregates partitioned by one value of a
// groupable categorical field.
type GroupStat struct {
	Group          string             `json:"group"`
	Count          int64              `json:"count"`
	AverageRatings map[string]float64 `json:"average_ratings"`
}

// DailyCount is the number of submissions received on one day.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
