package engine

import (
	"time"

	"github.com/soxlite/api/model"
)

var fixedNow = time.Date(2030, time.June, 15, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	return New(WithClock(func() time.Time { return fixedNow }))
}

// table builds a RecordSet from a header and positional rows; "" stays an
// empty string and nil marks a missing cell.
func table(columns []string, rows ...[]interface{}) *model.RecordSet {
	rs := &model.RecordSet{Columns: columns}
	for _, values := range rows {
		rec := model.Record{}
		for i, col := range columns {
			if i < len(values) {
				rec[col] = values[i]
			}
		}
		rs.Rows = append(rs.Rows, rec)
	}
	return rs
}

func texts(findings []model.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Text)
	}
	return out
}

func findingByRule(findings []model.Finding, id string) (model.Finding, bool) {
	for _, f := range findings {
		if f.RuleID == id {
			return f, true
		}
	}
	return model.Finding{}, false
}
