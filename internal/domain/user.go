package domain

import "time"

// UserRole is the coarse role flag attached to an account.
type UserRole string

const (
	UserRoleUser     UserRole = "user"
	UserRoleOperator UserRole = "operator"
	UserRoleAdmin    UserRole = "admin"
)

// User represents a registered account. Plain persistence, no derived state.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      UserRole
	CreatedAt time.Time
}
