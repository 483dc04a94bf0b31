package access

import "github.com/optimacrm/crm-backend-go/internal/domain/user"

// NoAccessPath is the sentinel page a role can be parked on. It never
// counts as a landing page.
const NoAccessPath = "/no-access"

// RolePaths declares, per role, the frontend routes the role may open.
// Every set is authored independently on purpose: the admin sets happen to
// be supersets of the sales sets, but that containment is data, not code.
// Deriving one list from another at runtime would silently change behavior
// the moment someone edits a single list, so don't. The superset property
// is asserted by a test instead.
//
// Order matters: the first non-sentinel entry is the role's landing page.
var RolePaths = map[user.Role][]string{
	user.RoleSuperAdmin: {
		"/dashboard",
		"/leads",
		"/contacts",
		"/accounts",
		"/deals",
		"/projects",
		"/tasks",
		"/tickets",
		"/approvals",
		"/users",
		"/settings",
	},
	user.RoleAdmin: {
		"/dashboard",
		"/leads",
		"/contacts",
		"/accounts",
		"/deals",
		"/projects",
		"/tasks",
		"/tickets",
		"/approvals",
		"/users",
	},
	user.RoleSalesManager: {
		"/dashboard",
		"/leads",
		"/contacts",
		"/accounts",
		"/deals",
		"/projects",
		"/tasks",
	},
	user.RoleSalesExecutive: {
		"/dashboard",
		"/leads",
		"/contacts",
		"/accounts",
		"/deals",
		"/tasks",
	},
	user.RoleSupportAgent: {
		"/dashboard",
		"/projects",
		"/tasks",
		"/tickets",
	},
	user.RoleCustomer: {
		NoAccessPath,
		"/tickets",
		"/projects",
	},
}

// IsPathAllowed reports whether role may open path. The match is a literal
// set membership: case-sensitive, no wildcards, no prefix logic. Unknown
// roles are denied everything.
func IsPathAllowed(role user.Role, path string) bool {
	paths, ok := RolePaths[role]
	if !ok {
		return false
	}
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}

// AllowedPaths returns the role's declared paths in declaration order.
// The caller gets a copy; the table itself is never handed out.
func AllowedPaths(role user.Role) []string {
	paths, ok := RolePaths[role]
	if !ok {
		return nil
	}
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

// DefaultLandingPath returns the first declared path that is not the
// no-access sentinel. ok is false when the role has no usable page.
func DefaultLandingPath(role user.Role) (string, bool) {
	for _, p := range RolePaths[role] {
		if p != NoAccessPath {
			return p, true
		}
	}
	return "", false
}
