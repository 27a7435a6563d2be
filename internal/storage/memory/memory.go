// Package memory provides an in-memory implementation of storage.Storage.
// It backs the handler tests and is handy for local development without a
// MongoDB instance. Identifier semantics match the MongoDB store: keys are
// ObjectIDs and the string form is converted at the boundary.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

const listLimit = 1000

// Memory is a map-backed store guarded by a single RWMutex, since requests
// are served concurrently.
type Memory struct {
	mu       sync.RWMutex
	students map[primitive.ObjectID]types.Student
}

// New returns an empty in-memory store.
func New() *Memory {
	return &Memory{students: make(map[primitive.ObjectID]types.Student)}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID,
			fmt.Errorf("%w: %q is not a valid object id", storage.ErrStudentNotFound, id)
	}
	return oid, nil
}

// clone copies the student so callers never share the GPA pointer with the
// stored record.
func clone(s types.Student) types.Student {
	if s.GPA != nil {
		gpa := *s.GPA
		s.GPA = &gpa
	}
	return s
}

func (m *Memory) CreateStudent(_ context.Context, student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	student.ID = primitive.NewObjectID()
	m.students[student.ID] = clone(student)

	return clone(student), nil
}

func (m *Memory) GetStudents(_ context.Context) ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]types.Student, 0, len(m.students))
	for _, student := range m.students {
		if len(students) == listLimit {
			break
		}
		students = append(students, clone(student))
	}

	return students, nil
}

func (m *Memory) GetStudentByID(_ context.Context, id string) (types.Student, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Student{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	student, ok := m.students[oid]
	if !ok {
		return types.Student{}, storage.ErrStudentNotFound
	}

	return clone(student), nil
}

func (m *Memory) UpdateStudentByID(_ context.Context, id string, patch types.UpdateStudent) (types.Student, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Student{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	student, ok := m.students[oid]
	if !ok {
		return types.Student{}, storage.ErrStudentNotFound
	}

	for field, value := range patch.Fields() {
		switch field {
		case "name":
			student.Name = value.(string)
		case "email":
			student.Email = value.(string)
		case "course":
			student.Course = value.(string)
		case "gpa":
			gpa := value.(float64)
			student.GPA = &gpa
		}
	}
	m.students[oid] = clone(student)

	return clone(student), nil
}

func (m *Memory) DeleteStudentByID(_ context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[oid]; !ok {
		return storage.ErrStudentNotFound
	}
	delete(m.students, oid)

	return nil
}
