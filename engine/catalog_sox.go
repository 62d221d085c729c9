// engine/catalog_sox.go
package engine

import (
	"github.com/soxlite/api/model"
)

var soxProfile = Profile{
	Framework: model.FrameworkSOX,
	Schema: Schema{
		Aliases: map[model.FieldRole][]string{
			model.RoleRiskLevel: {"Risk Rating", "Risk Level", "Risk"},
			model.RoleStatus:    {"Result", "Test Result", "Status"},
			model.RoleOwner:     {"Owner", "Control Owner"},
			model.RoleDueDate:   {"Due Date", "Due"},
			model.RoleFrequency: {"Frequency", "Test Frequency"},
			model.RoleUniqueID:  {"GL Code", "Control ID"},
		},
		DateRoles: []model.FieldRole{model.RoleDueDate},
	},
	Rules: []Rule{
		{
			ID:       "sox.low-risk-failed",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleRiskLevel, model.RoleStatus},
			Check: countRows(and(
				oneOf(model.RoleRiskLevel, "low"),
				contains(model.RoleStatus, "fail"),
			)),
			Message: "Low-risk controls have failed results.",
		},
		{
			ID:       "sox.high-risk-rare-frequency",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleRiskLevel, model.RoleFrequency},
			Check: countRows(and(
				oneOf(model.RoleRiskLevel, "high"),
				contains(model.RoleFrequency, "annual", "rare"),
			)),
			Message: "High-risk controls have rare testing frequencies.",
		},
		{
			ID:       "sox.missing-owner",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleOwner},
			Check:    countRows(blank(model.RoleOwner)),
			Message:  "{count} control(s) have no assigned owner.",
		},
		{
			ID:       "sox.missing-result",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleStatus},
			Check:    countRows(blank(model.RoleStatus)),
			Message:  "{count} control(s) have no result recorded.",
		},
		{
			ID:       "sox.overdue",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleDueDate},
			Check:    countRows(olderThan(model.RoleDueDate, 0)),
			Message:  "{count} control(s) are overdue.",
		},
		{
			ID:       "sox.invalid-due-date",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleDueDate},
			Check:    countRows(unparsedDate(model.RoleDueDate)),
			Message:  "{count} control(s) have invalid or missing due dates.",
		},
		{
			ID:       "sox.high-risk-no-frequency",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleRiskLevel, model.RoleFrequency},
			Check: countRows(and(
				oneOf(model.RoleRiskLevel, "high"),
				blank(model.RoleFrequency),
			)),
			Message: "{count} high-risk control(s) have no testing frequency set.",
		},
		{
			ID:       "sox.duplicate-id",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleUniqueID},
			Check:    duplicated(model.RoleUniqueID),
			Message:  "{count} control(s) have duplicate identifiers.",
		},
		{
			ID:       "sox.critical-failed",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleRiskLevel, model.RoleStatus},
			Check: countRows(and(
				oneOf(model.RoleRiskLevel, "high", "critical"),
				contains(model.RoleStatus, "fail"),
			)),
			Message: "High or critical risk controls have failed results.",
		},
		{
			ID:       "sox.critical-overdue",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleRiskLevel, model.RoleDueDate},
			Check: countRows(and(
				oneOf(model.RoleRiskLevel, "high", "critical"),
				olderThan(model.RoleDueDate, 0),
			)),
			Message: "High or critical risk controls are overdue.",
		},
		{
			ID:       "sox.owner-unassigned",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleOwner},
			Check:    countRows(blank(model.RoleOwner)),
			Message:  "Some controls are missing assigned owners.",
		},
		{
			ID:       "sox.frequency-undefined",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleFrequency},
			Check:    countRows(blank(model.RoleFrequency)),
			Message:  "Some controls do not have a defined test frequency.",
		},
		{
			ID:       "sox.critical-overdue-30d",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleRiskLevel, model.RoleDueDate},
			Check: countRows(and(
				oneOf(model.RoleRiskLevel, "high", "critical"),
				olderThan(model.RoleDueDate, 30*day),
			)),
			Message: "{count} high or critical risk control(s) are overdue by more than 30 days.",
		},
	},
	Metrics: MetricsProfile{
		FailedTerms: []string{"fail"},
		OverdueRole: model.RoleDueDate,
	},
	Analytics: AnalyticsProfile{
		DateRole: model.RoleDueDate,
		Heatmaps: [][2]Axis{
			{axis(model.RoleRiskLevel), axis(model.RoleFrequency)},
			{axis(model.RoleRiskLevel), axis(model.RoleStatus)},
		},
	},
}
