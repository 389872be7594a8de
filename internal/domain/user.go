package domain

import (
	"context"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleAnalista = "analista"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	Name         string    `json:"name" validate:"required,valid_name"`
	Role         string    `json:"role" validate:"required,oneof=admin analista"`
	Active       bool      `json:"active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) IsAnalyst() bool {
	return u != nil && u.Role == RoleAnalista
}

// AssignmentRequest distributes candidates to one analyst in a single update.
type AssignmentRequest struct {
	CandidateIDs []string `json:"candidate_ids" validate:"required,min=1,dive,required"`
	AnalystID    string   `json:"analyst_id" validate:"required"`
}

type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,valid_name"`
	Role     string `json:"role" validate:"required,oneof=admin analista"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Name  *string `json:"name,omitempty" validate:"omitempty,valid_name"`
	Role  *string `json:"role,omitempty" validate:"omitempty,oneof=admin analista"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Deactivate(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]User, error)
	ListAnalysts(ctx context.Context) ([]User, error)
}

type UserUsecase interface {
	ListUsers(ctx context.Context) ([]User, error)
	ListAnalysts(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*User, error)
	DeactivateUser(ctx context.Context, id string) error
	AssignCandidates(ctx context.Context, req AssignmentRequest) error
	UnassignCandidates(ctx context.Context, candidateIDs []string) error
}

type AuthUsecase interface {
	// Login exchanges credentials for the active user row and a signed token.
	Login(ctx context.Context, email, password string) (*User, string, error)
	// GetCurrentUser resolves a session subject to an active user row.
	// Inactive or missing rows are treated as logged out.
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
