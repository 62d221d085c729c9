// model/finding.go
package model

// Severity classifies a catalog rule
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityAnomaly Severity = "anomaly"
	SeverityAlert   Severity = "alert"
)

// Tier is the evaluation scope of a scan
type Tier string

const (
	// TierAll runs every catalog rule for the framework
	TierAll Tier = "all"
	// TierAlert runs only rules tagged SeverityAlert
	TierAlert Tier = "alert-only"
)

// Finding is one evaluated rule outcome. Findings are equal when Text is equal.
type Finding struct {
	RuleID        string   `json:"rule_id,omitempty"`
	Text          string   `json:"text"`
	AffectedCount int      `json:"affected_count"`
	Severity      Severity `json:"severity"`
}

const (
	NoAnomaliesText = "No anomalies detected."
	NoAlertsText    = "No urgent alerts detected."
)

// SentinelFinding is the single finding reported when a tier produced nothing
func SentinelFinding(tier Tier) Finding {
	text := NoAnomaliesText
	if tier == TierAlert {
		text = NoAlertsText
	}
	return Finding{Text: text, Severity: SeverityInfo}
}

// IsSentinel reports whether findings is the "no issues" placeholder list
func IsSentinel(findings []Finding) bool {
	if len(findings) != 1 {
		return false
	}
	f := findings[0]
	return f.RuleID == "" && (f.Text == NoAnomaliesText || f.Text == NoAlertsText)
}

// RuleDescriptor describes a catalog entry for introspection
type RuleDescriptor struct {
	ID            string      `json:"id"`
	Framework     Framework   `json:"framework"`
	Severity      Severity    `json:"severity"`
	RequiredRoles []FieldRole `json:"required_roles"`
	Message       string      `json:"message"`
}
