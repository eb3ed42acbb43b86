package rack

import "strings"

// Role is a semantic column role in a sensor table.
type Role string

const (
	RoleName   Role = "name"
	RoleValue  Role = "value"
	RoleStatus Role = "status"
	RoleUnits  Role = "units"
)

// roleRule binds a role to the keywords that identify its column. Rules
// are evaluated in order and the first matching column in the table's
// native order wins; there is no scoring.
type roleRule struct {
	role     Role
	keywords []string
}

var roleRules = []roleRule{
	{RoleName, []string{"sensor", "name"}},
	{RoleValue, []string{"value", "reading"}},
	{RoleStatus, []string{"status"}},
	{RoleUnits, []string{"unit"}},
}

// ResolveRoles maps semantic roles to column labels by case-insensitive
// keyword matching. Roles without a matching column are absent from the
// result; the value-role fallback to an unclaimed column is the loader's
// job.
func ResolveRoles(columns []string) map[Role]string {
	roles := make(map[Role]string, len(roleRules))
	for _, rule := range roleRules {
		for _, label := range columns {
			if containsAny(strings.ToLower(label), rule.keywords) {
				roles[rule.role] = label
				break
			}
		}
	}
	return roles
}

// firstUnclaimed returns the first column not claimed by any resolved role.
func firstUnclaimed(columns []string, roles map[Role]string) (string, bool) {
	claimed := make(map[string]bool, len(roles))
	for _, label := range roles {
		claimed[label] = true
	}
	for _, label := range columns {
		if !claimed[label] {
			return label, true
		}
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
