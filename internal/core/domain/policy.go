package domain

// Action identifies a role-gated operation on the admin surface.
type Action string

const (
	ActionApproveOrder Action = "order.approve"
	ActionListUsers    Action = "user.list"
	ActionCreateUser   Action = "user.create"
	ActionUpdateUser   Action = "user.update"
	ActionDeleteUser   Action = "user.delete"
)

// Authorize is the single policy decision point for every admin-surface
// mutation. targetRole is the role of the account being acted on, or the
// role being assigned; it is ignored for actions without a target.
//
// Rules:
//   - every action requires an admin or super_admin caller;
//   - a super_admin account can never be updated or deleted;
//   - only super_admin may create, update, or delete an admin account;
//   - created or edited accounts must carry an assignable role.
func Authorize(callerRole string, action Action, targetRole string) bool {
	if !IsAdminRole(callerRole) {
		return false
	}

	switch action {
	case ActionApproveOrder, ActionListUsers:
		return true

	case ActionCreateUser:
		if !IsAssignableRole(targetRole) {
			return false
		}
		if targetRole == RoleAdmin && callerRole != RoleSuperAdmin {
			return false
		}
		return true

	case ActionUpdateUser, ActionDeleteUser:
		if targetRole == RoleSuperAdmin {
			return false
		}
		if targetRole == RoleAdmin && callerRole != RoleSuperAdmin {
			return false
		}
		return true
	}

	return false
}
