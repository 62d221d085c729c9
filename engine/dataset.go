// engine/dataset.go
package engine

import (
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"github.com/soxlite/api/model"
)

type dateCell struct {
	at time.Time
	ok bool
}

type numberCell struct {
	v  float64
	ok bool
}

// Dataset is a normalized, read-only view over a RecordSet for one framework.
// Date and numeric roles are coerced once; the underlying rows are never
// modified and their order is preserved.
type Dataset struct {
	Framework model.Framework
	Roles     model.ResolvedRoles

	rows    []model.Record
	dates   map[model.FieldRole][]dateCell
	numbers map[model.FieldRole][]numberCell
}

// Normalize resolves the framework's field roles against rs and coerces the
// resolved date and numeric columns. Unparsable values become null.
func Normalize(rs *model.RecordSet, framework model.Framework) *Dataset {
	ds := &Dataset{
		Framework: framework,
		Roles:     model.ResolvedRoles{},
		dates:     map[model.FieldRole][]dateCell{},
		numbers:   map[model.FieldRole][]numberCell{},
	}
	if rs == nil {
		return ds
	}
	ds.rows = rs.Rows

	profile, ok := lookupProfile(framework)
	if !ok {
		return ds
	}
	ds.Roles = profile.Schema.Resolve(rs.Columns)

	for role, col := range ds.Roles {
		switch {
		case profile.Schema.isDateRole(role):
			cells := make([]dateCell, len(ds.rows))
			for i, row := range ds.rows {
				cells[i].at, cells[i].ok = coerceDate(row[col])
			}
			ds.dates[role] = cells
		case profile.Schema.isNumericRole(role):
			cells := make([]numberCell, len(ds.rows))
			for i, row := range ds.rows {
				cells[i].v, cells[i].ok = coerceNumber(row[col])
			}
			ds.numbers[role] = cells
		}
	}
	return ds
}

// Len returns the number of rows
func (ds *Dataset) Len() int {
	return len(ds.rows)
}

// Has reports whether every role resolved
func (ds *Dataset) Has(roles ...model.FieldRole) bool {
	return ds.Roles.Has(roles...)
}

func (ds *Dataset) raw(i int, role model.FieldRole) interface{} {
	col, ok := ds.Roles[role]
	if !ok || i < 0 || i >= len(ds.rows) {
		return nil
	}
	return ds.rows[i][col]
}

// Text returns the trimmed string form of a cell; null becomes ""
func (ds *Dataset) Text(i int, role model.FieldRole) string {
	v := ds.raw(i, role)
	if v == nil {
		return ""
	}
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return strings.TrimSpace(cast.ToString(v))
}

// Lower returns Text folded to lower case
func (ds *Dataset) Lower(i int, role model.FieldRole) string {
	return strings.ToLower(ds.Text(i, role))
}

// Blank reports a null or whitespace-only cell
func (ds *Dataset) Blank(i int, role model.FieldRole) bool {
	return ds.Text(i, role) == ""
}

// Date returns the parsed date of a cell
func (ds *Dataset) Date(i int, role model.FieldRole) (time.Time, bool) {
	if cells, ok := ds.dates[role]; ok {
		if i < 0 || i >= len(cells) {
			return time.Time{}, false
		}
		return cells[i].at, cells[i].ok
	}
	return coerceDate(ds.raw(i, role))
}

// Number returns the parsed numeric value of a cell
func (ds *Dataset) Number(i int, role model.FieldRole) (float64, bool) {
	if cells, ok := ds.numbers[role]; ok {
		if i < 0 || i >= len(cells) {
			return 0, false
		}
		return cells[i].v, cells[i].ok
	}
	return coerceNumber(ds.raw(i, role))
}

func coerceDate(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		parsed, err := dateparse.ParseAny(s)
		if err != nil {
			// day-first fallback for values like 31/12/2020
			if parsed, err = dateparse.ParseAny(s, dateparse.PreferMonthFirst(false)); err != nil {
				return time.Time{}, false
			}
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

func coerceNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, false
		}
		v = strings.TrimSpace(t)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
