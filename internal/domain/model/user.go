package model

import "time"

// Role is a caller privilege level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User represents a registered customer or administrator.
type User struct {
	ID           int64
	Name         string
	PhoneNumber  string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NewUser carries the fields needed to register a user.
type NewUser struct {
	Name         string
	PhoneNumber  string
	PasswordHash string
	Role         Role
}
