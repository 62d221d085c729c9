// engine/catalog_iso27001.go
package engine

import (
	"regexp"

	"github.com/soxlite/api/model"
)

var controlCategoryPattern = regexp.MustCompile(`[A-Z]+`)

// controlCategory extracts the leading capital-letter group of a control id
// ("A.5.1" -> "A", "ISMS-12" -> "ISMS")
func controlCategory(id string) string {
	return controlCategoryPattern.FindString(id)
}

var iso27001Profile = Profile{
	Framework: model.FrameworkISO27001,
	Schema: Schema{
		Aliases: map[model.FieldRole][]string{
			model.RoleStatus:         {"Status", "Implementation Status"},
			model.RoleLastReviewDate: {"Last Review Date", "Review Date", "Last Reviewed"},
			model.RoleEvidence:       {"Evidence", "Evidence Reference"},
			model.RoleOwner:          {"Control Owner", "Owner"},
			model.RoleAnnexReference: {"Annex A Reference", "Annex Reference", "Annex A"},
			model.RoleControlID:      {"Control ID"},
		},
		DateRoles: []model.FieldRole{model.RoleLastReviewDate},
	},
	Rules: []Rule{
		{
			ID:       "iso27001.failed-or-not-implemented",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleStatus},
			Check:    countRows(contains(model.RoleStatus, "fail", "not implemented")),
			Message:  "{count} control(s) are failed or not implemented.",
		},
		{
			ID:       "iso27001.stale-review",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleLastReviewDate},
			Check:    countRows(olderThan(model.RoleLastReviewDate, 365*day)),
			Message:  "{count} control(s) have not been reviewed in over 12 months.",
		},
		{
			ID:       "iso27001.missing-review-date",
			Severity: model.SeverityAlert,
			Requires: []model.FieldRole{model.RoleLastReviewDate},
			Check:    countRows(unparsedDate(model.RoleLastReviewDate)),
			Message:  "{count} control(s) have no review date recorded.",
		},
		{
			ID:       "iso27001.missing-evidence",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleEvidence},
			Check:    countRows(blank(model.RoleEvidence)),
			Message:  "{count} control(s) are missing evidence.",
		},
		{
			ID:       "iso27001.missing-owner",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleOwner},
			Check:    countRows(blank(model.RoleOwner)),
			Message:  "{count} control(s) are missing assigned owners.",
		},
		{
			ID:       "iso27001.missing-annex-reference",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleAnnexReference},
			Check:    countRows(blank(model.RoleAnnexReference)),
			Message:  "{count} control(s) are missing Annex A references.",
		},
		{
			ID:       "iso27001.duplicate-control-id",
			Severity: model.SeverityAnomaly,
			Requires: []model.FieldRole{model.RoleControlID},
			Check:    duplicated(model.RoleControlID),
			Message:  "{count} control(s) have duplicate Control IDs.",
		},
	},
	Metrics: MetricsProfile{
		FailedTerms: []string{"fail", "not implemented"},
		OverdueRole: model.RoleLastReviewDate,
		OverdueAge:  365 * day,
		Extras:      true,
	},
	Analytics: AnalyticsProfile{
		DateRole: model.RoleLastReviewDate,
		Heatmaps: [][2]Axis{
			{axis(model.RoleStatus), derivedAxis(model.RoleControlID, "Control Category", controlCategory)},
			{axis(model.RoleStatus), axis(model.RoleAnnexReference)},
		},
	},
}
