// Package storagetest holds the behaviour every storage.Storage backend
// must show. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-app/internal/storage"
	"github.com/aanand-mishra/students-app/internal/types"
)

// Run executes the suite. newStore must return an empty store; it is
// called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Helper()

	t.Run("CreateThenGet", func(t *testing.T) { testCreateThenGet(t, newStore(t)) })
	t.Run("CreateIgnoresID", func(t *testing.T) { testCreateIgnoresID(t, newStore(t)) })
	t.Run("ListOrdered", func(t *testing.T) { testListOrdered(t, newStore(t)) })
	t.Run("Search", func(t *testing.T) { testSearch(t, newStore(t)) })
	t.Run("Update", func(t *testing.T) { testUpdate(t, newStore(t)) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, newStore(t)) })
	t.Run("DeleteThenGet", func(t *testing.T) { testDeleteThenGet(t, newStore(t)) })
	t.Run("DeleteMissing", func(t *testing.T) { testDeleteMissing(t, newStore(t)) })
}

func ptr[T any](v T) *T { return &v }

func mustCreate(t *testing.T, s storage.Storage, name, email string) types.Student {
	t.Helper()
	created, err := s.Create(context.Background(), types.Student{Name: name, Email: email})
	require.NoError(t, err)
	return created
}

func names(students []types.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.Name)
	}
	return out
}

func testCreateThenGet(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	dob := time.Date(2001, time.March, 4, 0, 0, 0, 0, time.UTC)

	in := types.Student{
		Name:        "Alice",
		Email:       "alice@x.com",
		Phone:       ptr("555-0100"),
		DateOfBirth: &dob,
	}
	created, err := s.Create(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@x.com", got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0100", *got.Phone)
	require.NotNil(t, got.DateOfBirth)
	assert.True(t, dob.Equal(*got.DateOfBirth), "date of birth: want %v, got %v", dob, *got.DateOfBirth)

	bare := mustCreate(t, s, "Bob", "bob@x.com")
	got, err = s.GetByID(ctx, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
	assert.Nil(t, got.DateOfBirth)
}

func testCreateIgnoresID(t *testing.T, s storage.Storage) {
	first := mustCreate(t, s, "Alice", "alice@x.com")

	second, err := s.Create(context.Background(), types.Student{ID: first.ID, Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := s.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func testListOrdered(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	mustCreate(t, s, "Carol", "carol@x.com")
	mustCreate(t, s, "Alice", "alice@x.com")
	mustCreate(t, s, "Bob", "bob@x.com")

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Carol", "Alice", "Bob"}, names(all))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func testSearch(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	mustCreate(t, s, "Alice Smith", "alice@x.com")
	mustCreate(t, s, "Bob", "bob@x.com")
	mustCreate(t, s, "Malice", "malice@x.com")

	got, err := s.Search(ctx, "lice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Smith", "Malice"}, names(got))

	got, err = s.Search(ctx, "ALICE")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = s.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func testUpdate(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	created := mustCreate(t, s, "Alice", "alice@x.com")
	dob := time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)

	err := s.Update(ctx, types.Student{
		ID:          created.ID,
		Name:        "Alicia",
		Email:       "alicia@x.com",
		Phone:       ptr("555-0199"),
		DateOfBirth: &dob,
	})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Alicia", got.Name)
	assert.Equal(t, "alicia@x.com", got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0199", *got.Phone)
	require.NotNil(t, got.DateOfBirth)
	assert.True(t, dob.Equal(*got.DateOfBirth))

	// wholesale replacement clears optional fields
	require.NoError(t, s.Update(ctx, types.Student{ID: created.ID, Name: "Alicia", Email: "alicia@x.com"}))
	got, err = s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
	assert.Nil(t, got.DateOfBirth)
}

func testUpdateMissing(t *testing.T, s storage.Storage) {
	err := s.Update(context.Background(), types.Student{ID: 42, Name: "Ghost", Email: "ghost@x.com"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testDeleteThenGet(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	created := mustCreate(t, s, "Alice", "alice@x.com")

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err := s.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	next := mustCreate(t, s, "Bob", "bob@x.com")
	assert.NotEqual(t, created.ID, next.ID)

	_, err = s.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testDeleteMissing(t *testing.T, s storage.Storage) {
	assert.ErrorIs(t, s.Delete(context.Background(), 99), storage.ErrNotFound)
}
