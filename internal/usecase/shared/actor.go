package shared

import "github.com/google/uuid"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Actor is the authenticated caller. Customers only see their own aggregates.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == ownerID
}
