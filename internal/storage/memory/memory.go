// Package memory is a process-local implementation of storage.Storage.
// It backs the handler tests and the "memory" storage driver; nothing
// survives a restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aanand-mishra/students-app/internal/storage"
	"github.com/aanand-mishra/students-app/internal/types"
)

// Memory keeps students keyed by id. Ids increase monotonically and are
// never reused, even after a delete.
type Memory struct {
	mu       sync.RWMutex
	lastID   int64
	students map[int64]types.Student
}

var _ storage.Storage = (*Memory)(nil)

func New() *Memory {
	return &Memory{students: make(map[int64]types.Student)}
}

func (m *Memory) List(ctx context.Context) ([]types.Student, error) {
	return m.filter(func(types.Student) bool { return true }), nil
}

func (m *Memory) Search(ctx context.Context, name string) ([]types.Student, error) {
	return m.filter(func(s types.Student) bool {
		return strings.Contains(s.Name, name)
	}), nil
}

func (m *Memory) GetByID(ctx context.Context, id int64) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.students[id]
	if !ok {
		return types.Student{}, storage.ErrNotFound
	}
	return clone(s), nil
}

func (m *Memory) Create(ctx context.Context, student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	student.ID = m.lastID
	m.students[student.ID] = clone(student)
	return clone(student), nil
}

func (m *Memory) Update(ctx context.Context, student types.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[student.ID]; !ok {
		return storage.ErrNotFound
	}
	m.students[student.ID] = clone(student)
	return nil
}

func (m *Memory) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.students, id)
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) filter(keep func(types.Student) bool) []types.Student {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]types.Student, 0, len(m.students))
	for _, s := range m.students {
		if keep(s) {
			students = append(students, clone(s))
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

// clone detaches the optional fields so callers cannot mutate stored state
// through shared pointers.
func clone(s types.Student) types.Student {
	if s.Phone != nil {
		phone := *s.Phone
		s.Phone = &phone
	}
	if s.DateOfBirth != nil {
		dob := *s.DateOfBirth
		s.DateOfBirth = &dob
	}
	return s
}
