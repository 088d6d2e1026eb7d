package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	FullName     string    `json:"full_name"`
	ClassName    *string   `json:"class_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileUpdate carries the owner-editable profile fields; nil means keep.
type ProfileUpdate struct {
	FullName  *string
	ClassName *string
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) error
}
