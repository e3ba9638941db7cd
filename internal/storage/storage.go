// Package storage defines the Storage interface that every backend must
// satisfy. Handlers depend only on this interface, so SQLite, Postgres
// and the in-memory store are interchangeable without handler changes.
package storage

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks github.com/aanand-mishra/students-app/internal/storage Storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-app/internal/types"
)

// ErrNotFound is returned when no student exists with the requested id.
var ErrNotFound = errors.New("student not found")

// Storage is the repository contract over the students collection.
type Storage interface {
	// List returns every student ordered by ascending id. An empty
	// collection yields an empty, non-nil slice.
	List(ctx context.Context) ([]types.Student, error)

	// Search returns the students whose name contains name (case-sensitive),
	// ordered by ascending id.
	Search(ctx context.Context, name string) ([]types.Student, error)

	// GetByID returns ErrNotFound when the id is unknown.
	GetByID(ctx context.Context, id int64) (types.Student, error)

	// Create persists a new student and returns it with the assigned id.
	// Any id carried by the input is ignored.
	Create(ctx context.Context, student types.Student) (types.Student, error)

	// Update overwrites name, email, phone and date of birth of the
	// student with student.ID. Returns ErrNotFound when no row matched.
	Update(ctx context.Context, student types.Student) error

	// Delete removes the student. Returns ErrNotFound when no row matched.
	Delete(ctx context.Context, id int64) error

	Close() error
}
