// Package domain defines the business logic for the exercise log service.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput marks validation failures on caller-supplied fields.
	ErrInvalidInput = errors.New("invalid input")
)

// User is the registered account exercises are logged against.
type User struct {
	ID       string
	Username string
}

// UserRepository captures persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// Registry creates and lists users.
type Registry struct {
	users UserRepository
}

// NewRegistry constructs a Registry.
func NewRegistry(users UserRepository) *Registry {
	return &Registry{users: users}
}

// CreateUser persists a new user with a fresh id. Usernames are required but
// not unique.
func (r *Registry) CreateUser(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	user := User{
		ID:       uuid.NewString(),
		Username: username,
	}
	if err := r.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every registered user. An empty store yields an empty
// slice, never an error.
func (r *Registry) ListUsers(ctx context.Context) ([]User, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}
