// engine/catalog_soc2.go
package engine

import (
	"github.com/soxlite/api/model"
)

// trustServiceCategories are the SOC 2 criteria every control set must cover
var trustServiceCategories = []string{"CC", "DC", "AI", "PR", "SL"}

var soc2Profile = Profile{
	Framework: model.FrameworkSOC2,
	Schema: Schema{
		Aliases: map[model.FieldRole][]string{
			model.RoleStatus:       {"Status", "Result"},
			model.RoleLastTestDate: {"Last Test Date", "Test Date", "Last Tested"},
			model.RoleOwner:        {"Owner", "Control Owner"},
			model.RoleControlType:  {"Control Type"},
			model.RoleCriteria:     {"Trust Service Criteria", "Trust Services Criteria", "TSC"},
			model.RoleControlID:    {"Control ID"},
		},
		DateRoles: []model.FieldRole{model.RoleLastTestDate},
	},
	Rules: []Rule{
		{
			ID:       "soc2.failed-status",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleStatus},
			Check:    countRows(contains(model.RoleStatus, "fail")),
			Message:  "{count} SOC 2 control(s) have failed status.",
		},
		{
			ID:       "soc2.missing-control-type",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleControlType},
			Check:    countRows(blank(model.RoleControlType)),
			Message:  "{count} control(s) have no control type specified.",
		},
		{
			ID:       "soc2.missing-owner",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleOwner},
			Check:    countRows(blank(model.RoleOwner)),
			Message:  "{count} SOC 2 control(s) have no assigned owner.",
		},
		{
			ID:       "soc2.missing-status",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleStatus},
			Check:    countRows(blank(model.RoleStatus)),
			Message:  "{count} control(s) have no status recorded.",
		},
		{
			ID:       "soc2.stale-test",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleLastTestDate},
			Check:    countRows(olderThan(model.RoleLastTestDate, 90*day)),
			Message:  "{count} control(s) haven't been tested in over 90 days.",
		},
		{
			ID:       "soc2.missing-test-date",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleLastTestDate},
			Check:    countRows(unparsedDate(model.RoleLastTestDate)),
			Message:  "{count} control(s) have no test date recorded.",
		},
		{
			ID:       "soc2.criteria-coverage",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleCriteria},
			Check:    coverageGap(model.RoleCriteria, trustServiceCategories...),
			Message:  "Missing controls for Trust Service Criteria: {detail}",
		},
		{
			ID:       "soc2.duplicate-control-id",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleControlID},
			Check:    duplicated(model.RoleControlID),
			Message:  "{count} control(s) have duplicate Control IDs.",
		},
	},
	Metrics: MetricsProfile{
		FailedTerms: []string{"fail"},
		OverdueRole: model.RoleLastTestDate,
		OverdueAge:  90 * day,
	},
	Analytics: AnalyticsProfile{
		DateRole: model.RoleLastTestDate,
		Heatmaps: [][2]Axis{
			{axis(model.RoleCriteria), axis(model.RoleStatus)},
			{axis(model.RoleCriteria), axis(model.RoleControlType)},
		},
	},
}
