// Package storage defines the Storage interface — the contract that any
// document-store backend must satisfy to work with this application.
//
// Handlers depend only on this interface, never on a concrete driver.
// Swapping the backing store means implementing these methods and changing
// one line in main.go; tests run against the in-memory implementation
// without a real database.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-records/internal/types"
)

// ErrStudentNotFound is returned by lookups, updates, and deletes when no
// document matches the supplied identifier. Handlers compare with errors.Is
// and translate it into a 404.
var ErrStudentNotFound = errors.New("student not found")

// Storage is the document-store contract. Identifiers cross this boundary
// in their external string form; each implementation owns the conversion to
// its native key format.
type Storage interface {
	// CreateStudent persists a new student (the store assigns the id) and
	// returns the stored representation, re-read from the store.
	CreateStudent(ctx context.Context, student types.Student) (types.Student, error)

	// GetStudents returns up to 1000 students in the store's natural
	// iteration order. Returns an empty slice (not nil) if there are none.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentByID fetches a single student. Returns ErrStudentNotFound
	// if the id matches nothing.
	GetStudentByID(ctx context.Context, id string) (types.Student, error)

	// UpdateStudentByID applies the present fields of the patch to the
	// matching document and returns the stored representation afterwards.
	// An empty or no-op patch against an existing id returns the record
	// unchanged; a missing id returns ErrStudentNotFound.
	UpdateStudentByID(ctx context.Context, id string, patch types.UpdateStudent) (types.Student, error)

	// DeleteStudentByID removes the matching document. Returns
	// ErrStudentNotFound if nothing was deleted.
	DeleteStudentByID(ctx context.Context, id string) error
}
