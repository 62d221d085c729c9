// engine/metrics.go
package engine

import (
	"strings"
	"time"

	"github.com/soxlite/api/model"
)

// MetricsProfile parameterizes the metrics calculator for a framework
type MetricsProfile struct {
	// FailedTerms are matched as lower-case substrings of the status role
	FailedTerms []string
	// OverdueRole is compared against now minus OverdueAge
	OverdueRole model.FieldRole
	OverdueAge  time.Duration
	// Extras adds missing evidence and annex reference to the score
	Extras bool
}

func (mp MetricsProfile) failed(ds *Dataset, i int) bool {
	status := ds.Lower(i, model.RoleStatus)
	if status == "" {
		return false
	}
	for _, term := range mp.FailedTerms {
		if strings.Contains(status, term) {
			return true
		}
	}
	return false
}

func (mp MetricsProfile) overdue(ds *Dataset, i int, now time.Time) bool {
	at, ok := ds.Date(i, mp.OverdueRole)
	return ok && at.Before(now.Add(-mp.OverdueAge))
}

// ComputeMetrics derives the deficiency snapshot of ds. Counts for roles that
// did not resolve are zero.
func ComputeMetrics(ds *Dataset, now time.Time) model.MetricsSnapshot {
	snap := model.MetricsSnapshot{Framework: ds.Framework, TotalRows: ds.Len()}
	profile, ok := lookupProfile(ds.Framework)
	if !ok {
		snap.CompositeScore = 100
		return snap
	}
	mp := profile.Metrics
	snap.Extras = mp.Extras

	hasStatus := ds.Has(model.RoleStatus)
	hasOverdue := ds.Has(mp.OverdueRole)
	hasOwner := ds.Has(model.RoleOwner)
	hasEvidence := mp.Extras && ds.Has(model.RoleEvidence)
	hasAnnex := mp.Extras && ds.Has(model.RoleAnnexReference)

	for i := 0; i < ds.Len(); i++ {
		if hasStatus && mp.failed(ds, i) {
			snap.FailedCount++
		}
		if hasOverdue && mp.overdue(ds, i, now) {
			snap.OverdueCount++
		}
		if hasOwner && ds.Blank(i, model.RoleOwner) {
			snap.MissingOwnerCount++
		}
		if hasEvidence && ds.Blank(i, model.RoleEvidence) {
			snap.MissingEvidenceCount++
		}
		if hasAnnex && ds.Blank(i, model.RoleAnnexReference) {
			snap.MissingAnnexCount++
		}
	}

	snap.FailedPct = percent(snap.FailedCount, snap.TotalRows)
	snap.OverduePct = percent(snap.OverdueCount, snap.TotalRows)
	snap.MissingOwnerPct = percent(snap.MissingOwnerCount, snap.TotalRows)
	deficiency := snap.FailedPct + snap.OverduePct + snap.MissingOwnerPct
	if mp.Extras {
		snap.MissingEvidencePct = percent(snap.MissingEvidenceCount, snap.TotalRows)
		snap.MissingAnnexPct = percent(snap.MissingAnnexCount, snap.TotalRows)
		deficiency += snap.MissingEvidencePct + snap.MissingAnnexPct
	}
	snap.CompositeScore = compositeScore(deficiency)
	return snap
}

func percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// compositeScore is 100 minus the summed deficiency percentages, clamped at 0
func compositeScore(deficiency float64) float64 {
	score := 100 - deficiency
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
