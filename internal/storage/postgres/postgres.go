// Package postgres implements storage.Storage on PostgreSQL through the
// pgx database/sql driver and sqlx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/aanand-mishra/students-app/internal/config"
	"github.com/aanand-mishra/students-app/internal/storage"
	"github.com/aanand-mishra/students-app/internal/types"
)

// BIGSERIAL never hands out the same id twice, deleted ids included.
const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT        NOT NULL,
		email         TEXT        NOT NULL,
		phone         TEXT        NULL,
		date_of_birth TIMESTAMPTZ NULL
	)
`

const selectColumns = "SELECT id, name, email, phone, date_of_birth FROM students"

type Postgres struct {
	db *sqlx.DB
}

var _ storage.Storage = (*Postgres)(nil)

// New connects to cfg.Storage.DSN and creates the students table if needed.
func New(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	return NewFromDB(db), nil
}

// NewFromDB wraps an open connection pool whose schema is already in place.
func NewFromDB(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) List(ctx context.Context) ([]types.Student, error) {
	students := make([]types.Student, 0)
	if err := p.db.SelectContext(ctx, &students, selectColumns+" ORDER BY id"); err != nil {
		return nil, fmt.Errorf("List: select: %w", err)
	}
	return students, nil
}

// Search matches with strpos so the term is never interpreted as a pattern.
func (p *Postgres) Search(ctx context.Context, name string) ([]types.Student, error) {
	students := make([]types.Student, 0)
	err := p.db.SelectContext(ctx, &students,
		selectColumns+" WHERE strpos(name, $1) > 0 ORDER BY id", name)
	if err != nil {
		return nil, fmt.Errorf("Search: select: %w", err)
	}
	return students, nil
}

func (p *Postgres) GetByID(ctx context.Context, id int64) (types.Student, error) {
	var student types.Student
	err := p.db.GetContext(ctx, &student, selectColumns+" WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetByID: get: %w", err)
	}
	return student, nil
}

func (p *Postgres) Create(ctx context.Context, student types.Student) (types.Student, error) {
	var id int64
	err := p.db.QueryRowxContext(ctx,
		"INSERT INTO students (name, email, phone, date_of_birth) VALUES ($1, $2, $3, $4) RETURNING id",
		student.Name, student.Email, student.Phone, student.DateOfBirth,
	).Scan(&id)
	if err != nil {
		return types.Student{}, fmt.Errorf("Create: insert: %w", err)
	}

	student.ID = id
	return student, nil
}

func (p *Postgres) Update(ctx context.Context, student types.Student) error {
	result, err := p.db.ExecContext(ctx,
		"UPDATE students SET name = $1, email = $2, phone = $3, date_of_birth = $4 WHERE id = $5",
		student.Name, student.Email, student.Phone, student.DateOfBirth, student.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: exec: %w", err)
	}
	return expectOneRow(result, "Update")
}

func (p *Postgres) Delete(ctx context.Context, id int64) error {
	result, err := p.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("Delete: exec: %w", err)
	}
	return expectOneRow(result, "Delete")
}

func (p *Postgres) Close() error {
	return p.db.Close()
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
