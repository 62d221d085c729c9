// engine/evaluator.go
package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	logger "github.com/soxlite/api/logging"
	"github.com/soxlite/api/model"
)

// Evaluator runs a framework's catalog over a normalized dataset
type Evaluator struct {
	now func() time.Time
}

func NewEvaluator(now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{now: now}
}

// Evaluate returns the raw findings in catalog order. Rules whose required
// roles do not resolve are skipped. An empty dataset yields no findings.
func (ev *Evaluator) Evaluate(ds *Dataset, tier model.Tier) []model.Finding {
	if ds == nil || ds.Len() == 0 {
		return nil
	}
	profile, ok := lookupProfile(ds.Framework)
	if !ok {
		logger.Warn("No rule catalog for framework", zap.String("framework", ds.Framework.String()))
		return nil
	}

	now := ev.now()
	var findings []model.Finding
	for _, rule := range profile.Rules {
		if !applies(rule, tier) {
			continue
		}
		if !ds.Has(rule.Requires...) {
			logger.Debug("Skipping rule with unresolved roles",
				zap.String("rule", rule.ID),
				zap.String("framework", ds.Framework.String()))
			continue
		}
		if finding, ok := ev.evaluateRule(rule, ds, now); ok {
			findings = append(findings, finding)
		}
	}
	return findings
}

func applies(rule Rule, tier model.Tier) bool {
	if tier == model.TierAlert {
		return rule.Severity == model.SeverityAlert
	}
	return true
}

// evaluateRule contains a faulting predicate to a non-match
func (ev *Evaluator) evaluateRule(rule Rule, ds *Dataset, now time.Time) (finding model.Finding, fired bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Rule evaluation failed",
				zap.String("rule", rule.ID),
				zap.String("panic", fmt.Sprint(r)))
			fired = false
		}
	}()

	count, detail := rule.Check(ds, now)
	if count <= 0 {
		return model.Finding{}, false
	}
	return model.Finding{
		RuleID:        rule.ID,
		Text:          rule.render(count, detail),
		AffectedCount: count,
		Severity:      rule.Severity,
	}, true
}
