// model/metrics.go
package model

// MetricsSnapshot summarizes deficiency counts for one dataset
type MetricsSnapshot struct {
	Framework            Framework `json:"framework"`
	TotalRows            int       `json:"total_rows"`
	FailedCount          int       `json:"failed_count"`
	OverdueCount         int       `json:"overdue_count"`
	MissingOwnerCount    int       `json:"missing_owner_count"`
	MissingEvidenceCount int       `json:"missing_evidence_count,omitempty"`
	MissingAnnexCount    int       `json:"missing_annex_count,omitempty"`
	FailedPct            float64   `json:"failed_pct"`
	OverduePct           float64   `json:"overdue_pct"`
	MissingOwnerPct      float64   `json:"missing_owner_pct"`
	MissingEvidencePct   float64   `json:"missing_evidence_pct,omitempty"`
	MissingAnnexPct      float64   `json:"missing_annex_pct,omitempty"`
	CompositeScore       float64   `json:"composite_score"`
	// Extras is true when the framework contributes evidence and annex metrics
	Extras bool `json:"extras"`
}

// Flatten returns the metric name to value mapping consumed by report rendering
func (m MetricsSnapshot) Flatten() map[string]float64 {
	out := map[string]float64{
		"total_rows":          float64(m.TotalRows),
		"failed_count":        float64(m.FailedCount),
		"overdue_count":       float64(m.OverdueCount),
		"missing_owner_count": float64(m.MissingOwnerCount),
		"failed_pct":          m.FailedPct,
		"overdue_pct":         m.OverduePct,
		"missing_owner_pct":   m.MissingOwnerPct,
		"composite_score":     m.CompositeScore,
	}
	if m.Extras {
		out["missing_evidence_count"] = float64(m.MissingEvidenceCount)
		out["missing_annex_count"] = float64(m.MissingAnnexCount)
		out["missing_evidence_pct"] = m.MissingEvidencePct
		out["missing_annex_pct"] = m.MissingAnnexPct
	}
	return out
}
