// model/role.go
package model

// FieldRole is a logical, framework independent column concept
type FieldRole string

const (
	RoleRiskLevel      FieldRole = "risk_level"
	RoleStatus         FieldRole = "status"
	RoleOwner          FieldRole = "owner"
	RoleDueDate        FieldRole = "due_date"
	RoleFrequency      FieldRole = "frequency"
	RoleUniqueID       FieldRole = "unique_id"
	RoleValue          FieldRole = "value"
	RoleThreshold      FieldRole = "threshold"
	RoleESGFactor      FieldRole = "esg_factor"
	RoleMetric         FieldRole = "metric"
	RoleLastTestDate   FieldRole = "last_test_date"
	RoleControlType    FieldRole = "control_type"
	RoleCriteria       FieldRole = "criteria"
	RoleControlID      FieldRole = "control_id"
	RoleLastReviewDate FieldRole = "last_review_date"
	RoleEvidence       FieldRole = "evidence"
	RoleAnnexReference FieldRole = "annex_reference"
)

// ResolvedRoles maps a role to the dataset column that carries it.
// Roles missing from the map are unresolved for the dataset.
type ResolvedRoles map[FieldRole]string

// Column returns the resolved column name for role
func (r ResolvedRoles) Column(role FieldRole) (string, bool) {
	col, ok := r[role]
	return col, ok
}

// Has reports whether every role resolves
func (r ResolvedRoles) Has(roles ...FieldRole) bool {
	for _, role := range roles {
		if _, ok := r[role]; !ok {
			return false
		}
	}
	return true
}
