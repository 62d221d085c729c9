// engine/schema.go
package engine

import (
	"strings"

	"github.com/soxlite/api/model"
)

// Schema describes how a framework's field roles are found in an upload
type Schema struct {
	// Aliases lists acceptable source column names per role, in preference order
	Aliases map[model.FieldRole][]string
	// DateRoles are coerced to parsed dates during normalization
	DateRoles []model.FieldRole
	// NumericRoles are coerced to float64 during normalization
	NumericRoles []model.FieldRole
}

// foldColumn is the matching key for a column or alias name: case is
// ignored, as are spaces, underscores and hyphens ("Risk Rating",
// "risk_rating" and "RiskRating" all fold to "riskrating").
func foldColumn(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '_', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Resolve maps every role of the schema to a column of the dataset.
// The first alias with a matching column wins; among columns folding to the
// same key, the leftmost column wins. Unmatched roles are left out.
func (s Schema) Resolve(columns []string) model.ResolvedRoles {
	index := make(map[string]string, len(columns))
	for _, col := range columns {
		key := foldColumn(col)
		if key == "" {
			continue
		}
		if _, taken := index[key]; !taken {
			index[key] = col
		}
	}

	resolved := make(model.ResolvedRoles, len(s.Aliases))
	for role, aliases := range s.Aliases {
		for _, alias := range aliases {
			if col, ok := index[foldColumn(alias)]; ok {
				resolved[role] = col
				break
			}
		}
	}
	return resolved
}

func (s Schema) isDateRole(role model.FieldRole) bool {
	for _, r := range s.DateRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (s Schema) isNumericRole(role model.FieldRole) bool {
	for _, r := range s.NumericRoles {
		if r == role {
			return true
		}
	}
	return false
}
