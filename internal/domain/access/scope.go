package access

import "github.com/optimacrm/crm-backend-go/internal/domain/user"

// Collection identifies an owned record collection for scoping purposes.
type Collection string

const (
	CollectionLeads    Collection = "leads"
	CollectionContacts Collection = "contacts"
	CollectionAccounts Collection = "accounts"
	CollectionDeals    Collection = "deals"
	CollectionTasks    Collection = "tasks"
	CollectionProjects Collection = "projects"
	CollectionTickets  Collection = "tickets"
)

// assignedOnly collections are visible to a sales executive solely through
// their assigned_to column.
func (c Collection) assignedOnly() bool {
	switch c {
	case CollectionLeads, CollectionContacts, CollectionAccounts, CollectionDeals, CollectionTasks:
		return true
	}
	return false
}

// Scope is the visibility of one authenticated user, derived from their
// account every request and never cached across requests.
type Scope struct {
	Role   user.Role
	UserID string
	Email  string
}

// ScopeFor builds the scope for an authenticated user.
func ScopeFor(u user.User) Scope {
	return Scope{Role: u.Role, UserID: u.ID, Email: u.Email}
}

// Unrestricted reports whether the role sees every record.
func (s Scope) Unrestricted() bool {
	switch s.Role {
	case user.RoleSuperAdmin, user.RoleAdmin, user.RoleSalesManager:
		return true
	}
	return false
}

// ScopeQuery narrows base to the records s may see in collection.
// Anything not explicitly granted is denied: an unknown role, or a role
// reaching a collection it has no business in, gets a filter that matches
// nothing.
func ScopeQuery(s Scope, collection Collection, base Filter) Filter {
	if s.Unrestricted() {
		return base
	}

	switch s.Role {
	case user.RoleSalesExecutive:
		if collection.assignedOnly() {
			return base.And("assigned_to = ?", s.UserID)
		}
	case user.RoleSupportAgent:
		switch collection {
		case CollectionProjects, CollectionTickets:
			return base.And("(assigned_to = ? OR ? = ANY(team_members))", s.UserID, s.UserID)
		case CollectionTasks:
			return base.And("assigned_to = ?", s.UserID)
		}
	case user.RoleCustomer:
		switch collection {
		case CollectionTickets:
			return base.And("customer_id = ?", s.UserID)
		case CollectionProjects:
			return base.And("contact_email = ?", s.Email)
		}
	}

	return base.DenyAll()
}

// Ownership carries the owner fields of a single record, read fresh from
// the store immediately before a mutation.
type Ownership struct {
	AssignedTo   string
	TeamMembers  []string
	CustomerID   string
	ContactEmail string
}

// AllowsMutation re-derives the scoping predicate against one record's
// current owner. Update and delete paths must call this per mutation; a
// record a user could once list may since have been reassigned.
func (s Scope) AllowsMutation(collection Collection, o Ownership) bool {
	if s.Unrestricted() {
		return true
	}

	switch s.Role {
	case user.RoleSalesExecutive:
		if collection.assignedOnly() {
			return o.AssignedTo == s.UserID
		}
	case user.RoleSupportAgent:
		switch collection {
		case CollectionProjects, CollectionTickets:
			if o.AssignedTo == s.UserID {
				return true
			}
			for _, member := range o.TeamMembers {
				if member == s.UserID {
					return true
				}
			}
			return false
		case CollectionTasks:
			return o.AssignedTo == s.UserID
		}
	case user.RoleCustomer:
		switch collection {
		case CollectionTickets:
			return o.CustomerID == s.UserID
		case CollectionProjects:
			return o.ContactEmail == s.Email
		}
	}

	return false
}

// DefaultAssignee implements the create-time fallback: when a request does
// not name an assignee, the creator owns the record.
func (s Scope) DefaultAssignee(requested string) string {
	if requested == "" {
		return s.UserID
	}
	return requested
}
