// Package sqlite provides the SQLite-backed implementation of
// storage.Storage. It is the default driver: everything lives in a single
// file and there is no server process to run.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/aanand-mishra/students-app/internal/config"
	"github.com/aanand-mishra/students-app/internal/storage"
	"github.com/aanand-mishra/students-app/internal/types"

	// registers the "sqlite3" driver
	_ "github.com/mattn/go-sqlite3"
)

// date_of_birth is declared DATETIME so the driver hands back time.Time.
const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT     NOT NULL,
		email         TEXT     NOT NULL,
		phone         TEXT     NULL,
		date_of_birth DATETIME NULL
	)
`

const selectColumns = "SELECT id, name, email, phone, date_of_birth FROM students"

// SQLite is safe for concurrent use; writers wait on the busy timeout
// instead of failing with "database is locked".
type SQLite struct {
	Db *sqlx.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the database at cfg.Storage.Path and creates the students
// table if it does not exist yet.
func New(cfg *config.Config) (*SQLite, error) {
	if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", dsn(cfg.Storage.Path))
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000"
}

func (s *SQLite) List(ctx context.Context) ([]types.Student, error) {
	students := make([]types.Student, 0)
	if err := s.Db.SelectContext(ctx, &students, selectColumns+" ORDER BY id"); err != nil {
		return nil, fmt.Errorf("List: select: %w", err)
	}
	return students, nil
}

// Search uses instr rather than LIKE: LIKE is case-insensitive for ASCII
// in SQLite and treats % and _ in the term as wildcards.
func (s *SQLite) Search(ctx context.Context, name string) ([]types.Student, error) {
	students := make([]types.Student, 0)
	err := s.Db.SelectContext(ctx, &students,
		selectColumns+" WHERE instr(name, ?) > 0 ORDER BY id", name)
	if err != nil {
		return nil, fmt.Errorf("Search: select: %w", err)
	}
	return students, nil
}

func (s *SQLite) GetByID(ctx context.Context, id int64) (types.Student, error) {
	var student types.Student
	err := s.Db.GetContext(ctx, &student, selectColumns+" WHERE id = ? LIMIT 1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetByID: get: %w", err)
	}
	return student, nil
}

func (s *SQLite) Create(ctx context.Context, student types.Student) (types.Student, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO students (name, email, phone, date_of_birth) VALUES (?, ?, ?, ?)",
		student.Name, student.Email, student.Phone, student.DateOfBirth,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("Create: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("Create: last insert id: %w", err)
	}

	student.ID = lastID
	return student, nil
}

func (s *SQLite) Update(ctx context.Context, student types.Student) error {
	result, err := s.Db.ExecContext(ctx,
		"UPDATE students SET name = ?, email = ?, phone = ?, date_of_birth = ? WHERE id = ?",
		student.Name, student.Email, student.Phone, student.DateOfBirth, student.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: exec: %w", err)
	}
	return expectOneRow(result, "Update")
}

func (s *SQLite) Delete(ctx context.Context, id int64) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("Delete: exec: %w", err)
	}
	return expectOneRow(result, "Delete")
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

func expectOneRow(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
