package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the signed-in identity. Email is fixed at registration and
// never changes through profile updates; Role decides initial routing.
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	Avatar       string
	Role         Role
	RegisterTime time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
