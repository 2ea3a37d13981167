package domain

// Role is the caller's role as reported by the external identity provider.
type Role string

const (
	RoleContractor   Role = "contractor"
	RoleSiteIncharge Role = "site_incharge"
	RoleAgent        Role = "agent"
	RoleAdmin        Role = "admin"
	RoleOwner        Role = "owner"
)

// IsValid checks if the role is one of the recognized values.
func (r Role) IsValid() bool {
	switch r {
	case RoleContractor, RoleSiteIncharge, RoleAgent, RoleAdmin, RoleOwner:
		return true
	default:
		return false
	}
}

// CanReview reports whether the role is entitled to issue verification decisions.
func (r Role) CanReview() bool {
	return r == RoleSiteIncharge || r == RoleAdmin
}

// CanManageTasks reports whether the role may create tasks and submit evidence.
func (r Role) CanManageTasks() bool {
	return r == RoleContractor || r == RoleAdmin
}

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}
