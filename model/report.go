// model/report.go
package model

import "time"

// Report is the ordered, deduplicated outcome of one scan
type Report struct {
	ScanID      string    `json:"scan_id,omitempty"`
	Framework   Framework `json:"framework"`
	Tier        Tier      `json:"tier"`
	RowCount    int       `json:"row_count"`
	Findings    []Finding `json:"findings"`
	Dispatched  bool      `json:"dispatched"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Messages returns the finding texts in report order
func (r *Report) Messages() []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Text)
	}
	return out
}

// HasIssues reports whether the report carries at least one real finding
func (r *Report) HasIssues() bool {
	return len(r.Findings) > 0 && !IsSentinel(r.Findings)
}
