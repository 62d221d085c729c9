// engine/catalog.go
package engine

import (
	"strconv"
	"strings"

	"github.com/soxlite/api/model"
)

// Rule is one declarative catalog check
type Rule struct {
	ID       string
	Severity model.Severity
	// Requires lists the roles that must resolve; otherwise the rule is skipped
	Requires []model.FieldRole
	Check    Predicate
	// Message is rendered with {count} and {detail} substituted
	Message string
}

func (r Rule) render(count int, detail string) string {
	return strings.NewReplacer(
		"{count}", strconv.Itoa(count),
		"{detail}", detail,
	).Replace(r.Message)
}

// Profile bundles everything framework specific. Adding a framework means
// adding a Profile to profiles; the evaluator is untouched.
type Profile struct {
	Framework model.Framework
	Schema    Schema
	Rules     []Rule
	Metrics   MetricsProfile
	Analytics AnalyticsProfile
}

var profiles = map[model.Framework]*Profile{
	model.FrameworkSOX:      &soxProfile,
	model.FrameworkESG:      &esgProfile,
	model.FrameworkSOC2:     &soc2Profile,
	model.FrameworkISO27001: &iso27001Profile,
}

func lookupProfile(framework model.Framework) (*Profile, bool) {
	p, ok := profiles[framework]
	return p, ok
}

// Rules returns the catalog entries of a framework in declaration order
func Rules(framework model.Framework) []Rule {
	p, ok := lookupProfile(framework)
	if !ok {
		return nil
	}
	out := make([]Rule, len(p.Rules))
	copy(out, p.Rules)
	return out
}

// Describe returns the introspectable form of a framework's catalog
func Describe(framework model.Framework) []model.RuleDescriptor {
	rules := Rules(framework)
	out := make([]model.RuleDescriptor, 0, len(rules))
	for _, r := range rules {
		out = append(out, model.RuleDescriptor{
			ID:            r.ID,
			Framework:     framework,
			Severity:      r.Severity,
			RequiredRoles: append([]model.FieldRole(nil), r.Requires...),
			Message:       r.Message,
		})
	}
	return out
}

// Supported reports whether a catalog exists for framework
func Supported(framework model.Framework) bool {
	_, ok := lookupProfile(framework)
	return ok
}
