package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleManager
}

type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) IsManager() bool {
	return u.Role == RoleManager
}

// NormalizeEmail is the canonical form used for uniqueness and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Contact is the public part of a user shown in reports and draw results.
type Contact struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (u User) Contact() Contact {
	return Contact{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}
