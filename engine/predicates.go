// engine/predicates.go
package engine

import (
	"strings"
	"time"

	"github.com/soxlite/api/model"
)

// Predicate evaluates a rule against a dataset. A positive affected count
// fires the rule; detail fills the {detail} placeholder of the message.
type Predicate func(ds *Dataset, now time.Time) (affected int, detail string)

// RowCondition tests a single row
type RowCondition func(ds *Dataset, i int, now time.Time) bool

const day = 24 * time.Hour

// countRows counts the rows satisfying cond
func countRows(cond RowCondition) Predicate {
	return func(ds *Dataset, now time.Time) (int, string) {
		n := 0
		for i := 0; i < ds.Len(); i++ {
			if cond(ds, i, now) {
				n++
			}
		}
		return n, ""
	}
}

// duplicated counts repeat occurrences of non-blank values: the first
// occurrence of each value is not counted.
func duplicated(role model.FieldRole) Predicate {
	return func(ds *Dataset, _ time.Time) (int, string) {
		seen := make(map[string]struct{}, ds.Len())
		dupes := 0
		for i := 0; i < ds.Len(); i++ {
			v := ds.Text(i, role)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				dupes++
				continue
			}
			seen[v] = struct{}{}
		}
		return dupes, ""
	}
}

// coverageGap reports the codes no row's role value contains, matched as a
// case-insensitive substring. Codes keep their declared order in detail.
func coverageGap(role model.FieldRole, codes ...string) Predicate {
	return func(ds *Dataset, _ time.Time) (int, string) {
		var missing []string
		for _, code := range codes {
			needle := strings.ToLower(code)
			covered := false
			for i := 0; i < ds.Len(); i++ {
				if strings.Contains(ds.Lower(i, role), needle) {
					covered = true
					break
				}
			}
			if !covered {
				missing = append(missing, code)
			}
		}
		return len(missing), strings.Join(missing, ", ")
	}
}

func blank(role model.FieldRole) RowCondition {
	return func(ds *Dataset, i int, _ time.Time) bool {
		return ds.Blank(i, role)
	}
}

// contains matches when the lower-cased cell contains any of terms
func contains(role model.FieldRole, terms ...string) RowCondition {
	return func(ds *Dataset, i int, _ time.Time) bool {
		v := ds.Lower(i, role)
		if v == "" {
			return false
		}
		for _, t := range terms {
			if strings.Contains(v, t) {
				return true
			}
		}
		return false
	}
}

// oneOf matches when the lower-cased cell equals any of values
func oneOf(role model.FieldRole, values ...string) RowCondition {
	return func(ds *Dataset, i int, _ time.Time) bool {
		v := ds.Lower(i, role)
		for _, want := range values {
			if v == want {
				return true
			}
		}
		return false
	}
}

// olderThan matches parsed dates strictly before now minus age
func olderThan(role model.FieldRole, age time.Duration) RowCondition {
	return func(ds *Dataset, i int, now time.Time) bool {
		at, ok := ds.Date(i, role)
		return ok && at.Before(now.Add(-age))
	}
}

// unparsedDate matches null or unparsable dates
func unparsedDate(role model.FieldRole) RowCondition {
	return func(ds *Dataset, i int, _ time.Time) bool {
		_, ok := ds.Date(i, role)
		return !ok
	}
}

// lessThan matches rows where both cells parse and a < b
func lessThan(a, b model.FieldRole) RowCondition {
	return func(ds *Dataset, i int, _ time.Time) bool {
		x, okX := ds.Number(i, a)
		y, okY := ds.Number(i, b)
		return okX && okY && x < y
	}
}

func and(conds ...RowCondition) RowCondition {
	return func(ds *Dataset, i int, now time.Time) bool {
		for _, c := range conds {
			if !c(ds, i, now) {
				return false
			}
		}
		return true
	}
}
