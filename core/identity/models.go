package identity

// Role is the closed set of console roles.
type Role string

const (
	RoleSuperadmin  Role = "superadmin"
	RoleAdmin       Role = "admin"
	RoleStaff       Role = "staff"
	RoleClientAdmin Role = "client_admin"
	RoleManager     Role = "manager"
	RoleSupervisor  Role = "supervisor"
)

var AllRoles = []Role{RoleSuperadmin, RoleAdmin, RoleStaff, RoleClientAdmin, RoleManager, RoleSupervisor}

func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Internal reports whether the role belongs to provider staff (unrestricted data scope).
func (r Role) Internal() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// Identity is the signed-in actor. Read-only within a session.
type Identity struct {
	Role Role `json:"role"`
	// OrgIDs are direct organization memberships.
	OrgIDs []string `json:"org_ids,omitempty"`
	// TeamOrgIDs are organization memberships inherited through team membership.
	TeamOrgIDs []string `json:"team_org_ids,omitempty"`
}

// Impersonation is the "view as another organization" overlay elected by
// internal staff. Invariant: Active == (OrgID != "").
type Impersonation struct {
	Active       bool   `json:"is_active"`
	OriginalRole Role   `json:"original_role,omitempty"`
	OrgID        string `json:"org_id,omitempty"`
	Role         Role   `json:"role,omitempty"`
}

func (imp Impersonation) valid() bool {
	return imp.Active == (imp.OrgID != "")
}

// Resolution is the actor's effective data scope.
type Resolution struct {
	// OrgIDs the actor may see; meaningless when Unrestricted.
	OrgIDs []string
	// Unrestricted means no organization constraint at all (internal staff).
	Unrestricted bool
	Impersonating bool
}
