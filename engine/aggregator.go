// engine/aggregator.go
package engine

import "github.com/soxlite/api/model"

// Dedupe drops findings whose text was already seen. The first occurrence
// wins and survivors keep their order.
func Dedupe(findings []model.Finding) []model.Finding {
	seen := make(map[string]struct{}, len(findings))
	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if _, dup := seen[f.Text]; dup {
			continue
		}
		seen[f.Text] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Aggregate deduplicates findings and substitutes the tier's sentinel for
// an empty result
func Aggregate(findings []model.Finding, tier model.Tier) []model.Finding {
	out := Dedupe(findings)
	if len(out) == 0 {
		return []model.Finding{model.SentinelFinding(tier)}
	}
	return out
}
