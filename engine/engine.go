// engine/engine.go
package engine

import (
	"time"

	"github.com/soxlite/api/model"
)

// Engine evaluates record sets against the framework catalogs. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	evaluator *Evaluator
	now       func() time.Time
}

type Option func(*Engine)

// WithClock overrides the reference time used for date rules
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	e.evaluator = NewEvaluator(e.now)
	return e
}

// Now returns the engine's reference time
func (e *Engine) Now() time.Time {
	return e.now()
}

// Evaluate normalizes rs and returns the raw findings of tier
func (e *Engine) Evaluate(rs *model.RecordSet, framework model.Framework, tier model.Tier) []model.Finding {
	return e.evaluator.Evaluate(Normalize(rs, framework), tier)
}

// Scan runs the full pipeline: normalize, evaluate, aggregate
func (e *Engine) Scan(rs *model.RecordSet, framework model.Framework, tier model.Tier) *model.Report {
	return &model.Report{
		Framework:   framework,
		Tier:        tier,
		RowCount:    rs.Len(),
		Findings:    Aggregate(e.Evaluate(rs, framework, tier), tier),
		GeneratedAt: e.now(),
	}
}

func (e *Engine) Metrics(rs *model.RecordSet, framework model.Framework) model.MetricsSnapshot {
	return ComputeMetrics(Normalize(rs, framework), e.now())
}

func (e *Engine) Trends(rs *model.RecordSet, framework model.Framework) model.Trends {
	return ComputeTrends(Normalize(rs, framework), e.now())
}

func (e *Engine) OwnerPerformance(rs *model.RecordSet, framework model.Framework) map[string]model.OwnerStats {
	return ComputeOwnerPerformance(Normalize(rs, framework), e.now())
}

func (e *Engine) Heatmap(rs *model.RecordSet, framework model.Framework) model.Heatmap {
	return ComputeHeatmap(Normalize(rs, framework))
}
