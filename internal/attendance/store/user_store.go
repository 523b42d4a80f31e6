package store

import "context"

const (
	RoleFaculty = "FACULTY"
	RoleStudent = "STUDENT"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string // RoleFaculty | RoleStudent
}

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
}
