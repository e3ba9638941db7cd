// Package student contains the HTTP handlers of the Student resource.
//
// Every handler is built by a factory that receives its dependencies and
// returns the http.HandlerFunc the router needs:
//
//	r.Post("/api/students", student.New(storage))
//
// New(storage) runs once at startup; the returned closure runs on every
// request.
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/students-app/internal/logger"
	"github.com/aanand-mishra/students-app/internal/storage"
	"github.com/aanand-mishra/students-app/internal/types"
	"github.com/aanand-mishra/students-app/internal/utils/response"
	"github.com/aanand-mishra/students-app/internal/validation"
)

var (
	errEmptyBody  = errors.New("request body is empty")
	errIDMismatch = errors.New("route id and body id must match")
)

// Register mounts the resource routes on r.
//
//	GET    /api/students        → list, optional ?searchString=
//	GET    /api/students/{id}   → get one
//	POST   /api/students        → create
//	PUT    /api/students/{id}   → replace
//	DELETE /api/students/{id}   → delete
func Register(r chi.Router, s storage.Storage) {
	r.Route("/api/students", func(r chi.Router) {
		r.Get("/", GetList(s))
		r.Post("/", New(s))
		r.Get("/{id}", GetByID(s))
		r.Put("/{id}", Update(s))
		r.Delete("/{id}", Delete(s))
	})
}

// New handles POST /api/students.
//
//	201 Created   created record, Location: /api/students/{id}
//	400           empty body, malformed JSON or failed validation
//	500           storage error
func New(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		if err := validation.Struct(student); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(err))
			return
		}

		// ids are assigned by storage only
		student.ID = 0

		created, err := s.Create(r.Context(), student)
		if err != nil {
			slog.Error("error creating student", logger.Err(err))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))

		w.Header().Set("Location", Location(created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /api/students/{id}.
//
//	200  the record
//	404  unknown or non-integer id
func GetByID(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		student, err := s.GetByID(r.Context(), id)
		if err != nil {
			writeStorageError(w, "error getting student", id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /api/students[?searchString=...].
//
// A blank searchString lists everything. Otherwise only students whose
// name contains the term are returned. Both are ordered by id and an
// empty result is [] rather than null.
func GetList(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("searchString")

		var (
			students []types.Student
			err      error
		)
		if strings.TrimSpace(search) == "" {
			slog.Info("getting all students")
			students, err = s.List(r.Context())
		} else {
			slog.Info("searching students", slog.String("search", search))
			students, err = s.Search(r.Context(), search)
		}
		if err != nil {
			slog.Error("error getting students", logger.Err(err))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// Update handles PUT /api/students/{id}. All mutable fields are replaced.
//
//	204  updated
//	400  body id differs from route id, empty/malformed body, failed validation
//	404  unknown id
//
// The id and validation checks run before storage is touched.
func Update(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		if student.ID != id {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errIDMismatch))
			return
		}

		if err := validation.Struct(student); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(err))
			return
		}

		if _, err := s.GetByID(r.Context(), id); err != nil {
			writeStorageError(w, "error getting student", id, err)
			return
		}

		if err := s.Update(r.Context(), student); err != nil {
			writeStorageError(w, "error updating student", id, err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// Delete handles DELETE /api/students/{id}.
//
//	204  deleted
//	404  unknown id
func Delete(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		if err := s.Delete(r.Context(), id); err != nil {
			writeStorageError(w, "error deleting student", id, err)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// Location is the Get-by-id path of a student.
func Location(id int64) string {
	return fmt.Sprintf("/api/students/%d", id)
}

// parseID answers 404 for ids that are not integers: no such resource
// can exist under that path.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusNotFound,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return id, true
}

func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var student types.Student

	err := json.NewDecoder(r.Body).Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errEmptyBody))
		return student, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return student, false
	}

	return student, true
}

func writeStorageError(w http.ResponseWriter, msg string, id int64, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}

	slog.Error(msg, slog.Int64("id", id), logger.Err(err))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
