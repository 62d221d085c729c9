// model/analytics.go
package model

// Trends holds month bucketed counts keyed by "YYYY-MM"
type Trends struct {
	OverdueByMonth map[string]int `json:"overdue_by_month,omitempty"`
	FailByMonth    map[string]int `json:"fail_by_month,omitempty"`
}

// OwnerStats aggregates rows assigned to a single owner
type OwnerStats struct {
	Total   int `json:"total"`
	Failed  int `json:"failed"`
	Overdue int `json:"overdue"`
}

// Heatmap is a two axis count grid
type Heatmap struct {
	Rows    string                    `json:"rows"`
	Columns string                    `json:"columns"`
	Cells   map[string]map[string]int `json:"cells"`
}
