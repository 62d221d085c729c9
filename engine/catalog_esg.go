// engine/catalog_esg.go
package engine

import (
	"github.com/soxlite/api/model"
)

var esgProfile = Profile{
	Framework: model.FrameworkESG,
	Schema: Schema{
		Aliases: map[model.FieldRole][]string{
			model.RoleStatus:    {"Status", "Result"},
			model.RoleValue:     {"Value", "Actual", "Actual Value"},
			model.RoleThreshold: {"Threshold", "Target"},
			model.RoleOwner:     {"Owner", "Metric Owner"},
			model.RoleDueDate:   {"Due Date", "Due"},
			model.RoleESGFactor: {"ESG Factor", "Factor"},
			model.RoleMetric:    {"Metric", "Metric Name"},
		},
		DateRoles:    []model.FieldRole{model.RoleDueDate},
		NumericRoles: []model.FieldRole{model.RoleValue, model.RoleThreshold},
	},
	Rules: []Rule{
		{
			ID:       "esg.failed-status",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleStatus},
			Check:    countRows(contains(model.RoleStatus, "fail")),
			Message:  "{count} ESG metric(s) have failed status.",
		},
		{
			ID:       "esg.below-threshold",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleValue, model.RoleThreshold},
			Check:    countRows(lessThan(model.RoleValue, model.RoleThreshold)),
			Message:  "{count} ESG metric(s) are below threshold.",
		},
		{
			ID:       "esg.missing-owner",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleOwner},
			Check:    countRows(blank(model.RoleOwner)),
			Message:  "{count} ESG metric(s) have no assigned owner.",
		},
		{
			ID:       "esg.missing-status",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleStatus},
			Check:    countRows(blank(model.RoleStatus)),
			Message:  "{count} ESG metric(s) have no status recorded.",
		},
		{
			ID:       "esg.overdue",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleDueDate},
			Check:    countRows(olderThan(model.RoleDueDate, 0)),
			Message:  "{count} ESG metric(s) are overdue.",
		},
		{
			ID:       "esg.invalid-due-date",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleDueDate},
			Check:    countRows(unparsedDate(model.RoleDueDate)),
			Message:  "{count} ESG metric(s) have invalid or missing due dates.",
		},
		{
			ID:       "esg.duplicate-factor",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleESGFactor},
			Check:    duplicated(model.RoleESGFactor),
			Message:  "{count} ESG metric(s) have duplicate factors.",
		},
		{
			ID:       "esg.owner-unassigned",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleOwner},
			Check:    countRows(blank(model.RoleOwner)),
			Message:  "Some ESG metrics are missing assigned owners.",
		},
		{
			ID:       "esg.overdue-30d",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleDueDate},
			Check:    countRows(olderThan(model.RoleDueDate, 30*day)),
			Message:  "{count} ESG metric(s) are overdue by more than 30 days.",
		},
	},
	Metrics: MetricsProfile{
		FailedTerms: []string{"fail"},
		OverdueRole: model.RoleDueDate,
	},
	Analytics: AnalyticsProfile{
		DateRole: model.RoleDueDate,
		Heatmaps: [][2]Axis{
			{axis(model.RoleESGFactor), axis(model.RoleStatus)},
			{axis(model.RoleESGFactor), axis(model.RoleMetric)},
		},
	},
}
