package user

import "time"

type Role string

const (
	RoleSuperAdmin     Role = "super_admin"     // Full access, can manage admins
	RoleAdmin          Role = "admin"           // Full access, approves registrations
	RoleSalesManager   Role = "sales_manager"   // Full visibility over sales records
	RoleSalesExecutive Role = "sales_executive" // Sees only records assigned to them
	RoleSupportAgent   Role = "support_agent"   // Works tickets/projects they are on
	RoleCustomer       Role = "customer"        // Portal access to their own records
)

// Roles lists every known role tag. Order matters nowhere; membership does.
var Roles = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleSalesManager,
	RoleSalesExecutive,
	RoleSupportAgent,
	RoleCustomer,
}

// RegistrableRoles are the roles reachable through public self-registration.
// Admin roles are only ever created through the administrative user endpoints.
var RegistrableRoles = []Role{
	RoleSalesManager,
	RoleSalesExecutive,
	RoleSupportAgent,
	RoleCustomer,
}

// IsValid reports whether r is one of the six known role tags.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    *string
	Role            Role
	IsActive        bool
	IsApproved      bool
	ApprovedBy      *string
	ApprovedAt      *time.Time
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user holds an administrative role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// CanDecideApprovals checks if user may approve or reject registrations
func (u *User) CanDecideApprovals() bool {
	return u.IsAdmin()
}

// RequiresApproval reports whether the account must be approved before it
// can authenticate. Admin accounts are exempt.
func (u *User) RequiresApproval() bool {
	return !u.IsAdmin()
}
