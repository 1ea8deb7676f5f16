package domain

import "time"

// Role distinguishes the two kinds of account.
type Role string

const (
	RoleJobSeeker Role = "Job Seeker"
	RoleEmployer  Role = "Employer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// User is an account holder. Identity and role never change after registration.
type User struct {
	ID           string    `msgpack:"id"`
	Name         string    `msgpack:"name"`
	Email        string    `msgpack:"email"`
	Phone        string    `msgpack:"phone"`
	PasswordHash string    `msgpack:"-"`
	Role         Role      `msgpack:"role"`
	CreatedAt    time.Time `msgpack:"created_at"`
}
