// Package store persists user accounts and contact messages.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("already exists")
)

// Store is implemented by Memory and Postgres.
type Store interface {
	CreateUser(ctx context.Context, u model.User) error
	UserByUsername(ctx context.Context, username string) (model.User, error)
	AddContact(ctx context.Context, c model.Contact) error
	Contact(ctx context.Context, id uuid.UUID) (model.Contact, error)
	Contacts(ctx context.Context) ([]model.Contact, error)
}
