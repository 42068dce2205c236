package entity

import "time"

// User roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

// User is an application account. PasswordHash is a bcrypt hash.
type User struct {
	ID           string
	Username     string // unique
	PasswordHash string
	Name         string
	Role         string
	UseYN        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
