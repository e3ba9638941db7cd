// Package types holds the data structures shared by the record service,
// its storage backends and the web front end. Keeping them in one place
// prevents import cycles between those packages.
package types

import "time"

// Student is the single resource of the application.
//
// ID is assigned by storage on creation and never changes afterwards.
// Phone and DateOfBirth are optional and encode as JSON null when absent.
//
// The validate tags are checked by the validation package; db tags are
// used by sqlx when scanning rows.
type Student struct {
	ID          int64      `json:"id"          db:"id"`
	Name        string     `json:"name"        db:"name"          validate:"required,notblank"`
	Email       string     `json:"email"       db:"email"         validate:"required,email"`
	Phone       *string    `json:"phone"       db:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth" db:"date_of_birth"`
}
