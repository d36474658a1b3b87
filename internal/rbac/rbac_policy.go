package rbac

import "team-pulse/internal/domain"

// Resources and actions used by route guards.
const (
	ResourceLeave        = "leave"
	ResourceTeam         = "team"
	ResourceUser         = "user"
	ResourceNotification = "notification"

	ActionApply   = "apply"
	ActionRead    = "read"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionCancel  = "cancel"
	ActionCreate  = "create"
	ActionUpdate  = "update"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Only MANAGER and USER may apply for or cancel leave; reviewing is for ADMIN
// and MANAGER. Row level checks (own team, own request) live in the services.
var defaultPolicies = map[domain.Role][][2]string{
	domain.RoleAdmin: {
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionApprove},
		{ResourceLeave, ActionReject},
		{ResourceTeam, ActionCreate},
		{ResourceTeam, ActionRead},
		{ResourceUser, ActionCreate},
		{ResourceUser, ActionRead},
		{ResourceUser, ActionUpdate},
		{ResourceNotification, ActionRead},
		{ResourceNotification, ActionUpdate},
	},
	domain.RoleManager: {
		{ResourceLeave, ActionApply},
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionApprove},
		{ResourceLeave, ActionReject},
		{ResourceLeave, ActionCancel},
		{ResourceTeam, ActionRead},
		{ResourceUser, ActionRead},
		{ResourceNotification, ActionRead},
		{ResourceNotification, ActionUpdate},
	},
	domain.RoleUser: {
		{ResourceLeave, ActionApply},
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionCancel},
		{ResourceTeam, ActionRead},
		{ResourceNotification, ActionRead},
		{ResourceNotification, ActionUpdate},
	},
}

func policyRules() [][]string {
	var rules [][]string
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleUser} {
		for _, p := range defaultPolicies[role] {
			rules = append(rules, []string{string(role), p[0], p[1]})
		}
	}
	return rules
}
