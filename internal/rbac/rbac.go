package rbac

type Role string
type Action string

const (
	RoleResearcher        Role = "researcher"
	RoleIPROfficer        Role = "ipr_officer"
	RoleInnovationManager Role = "innovation_manager"
	RoleStartupFounder    Role = "startup_founder"
	RoleAdmin             Role = "admin"
)

const (
	ActionRead        Action = "read"
	ActionWrite       Action = "write"
	ActionDelete      Action = "delete"
	ActionManageUsers Action = "manage_users"
)

// Can reports whether a role may perform an action. The role gate only
// restricts user management: every authenticated role works with domain
// records, and only admins touch accounts.
func Can(role Role, action Action) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleResearcher, RoleIPROfficer, RoleInnovationManager, RoleStartupFounder:
		return action == ActionRead || action == ActionWrite || action == ActionDelete
	default:
		return false
	}
}

func Normalize(role string) Role {
	switch Role(role) {
	case RoleResearcher, RoleIPROfficer, RoleInnovationManager, RoleStartupFounder, RoleAdmin:
		return Role(role)
	default:
		return RoleResearcher
	}
}

// Roles lists every assignable role, in display order.
func Roles() []Role {
	return []Role{RoleResearcher, RoleIPROfficer, RoleInnovationManager, RoleStartupFounder, RoleAdmin}
}
