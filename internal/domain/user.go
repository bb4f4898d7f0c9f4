package domain

import "time"

// UserRole separates regular reporters from administrators.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// User is the domain model for accounts that report outages.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	Role         UserRole
	CreatedAt    time.Time
}
