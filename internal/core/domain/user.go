package domain

import "time"

// Role is the privilege level stored on a user record.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// UserStatus tracks the seller-verification workflow. The zero value means
// the user never asked to become a seller.
type UserStatus string

const (
	StatusUnset     UserStatus = ""
	StatusRequested UserStatus = "requested"
	StatusVerified  UserStatus = "verified"
)

// validTransitions defines the transitions a user may make themselves.
// Verification is an admin decision recorded by a role update and is not
// reachable from here.
var validTransitions = map[UserStatus][]UserStatus{
	StatusUnset: {StatusRequested},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s UserStatus) CanTransitionTo(next UserStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// User models a storefront account. Email is the natural key.
type User struct {
	ID          string     `json:"_id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Image       string     `json:"image"`
	Role        Role       `json:"role"`
	Status      UserStatus `json:"status,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt time.Time  `json:"last_login_at"`
}
