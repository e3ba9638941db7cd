// Package web is the browser-facing front end. It renders HTML views and
// forwards every action to the record service through a StudentAPI; it
// keeps no data of its own.
//
// Each action returns a result, which is either a redirect or a page to
// render, so failed submissions take the same path as successful ones.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/students-app/internal/client/studentapi"
	"github.com/aanand-mishra/students-app/internal/logger"
	"github.com/aanand-mishra/students-app/internal/types"
	"github.com/aanand-mishra/students-app/internal/utils/response"
)

//go:generate mockgen -destination=mocks/mock_studentapi.go -package=mocks github.com/aanand-mishra/students-app/internal/http/handlers/web StudentAPI

// StudentAPI is the record service as seen by the front end.
// *studentapi.Client implements it.
type StudentAPI interface {
	List(ctx context.Context, search string) ([]types.Student, error)
	Get(ctx context.Context, id int64) (types.Student, error)
	Create(ctx context.Context, student types.Student) (types.Student, error)
	Update(ctx context.Context, id int64, student types.Student) error
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	api   StudentAPI
	views views
}

// New parses the embedded templates and binds them to api.
func New(api StudentAPI) (*Handler, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}
	return &Handler{api: api, views: v}, nil
}

// Register mounts the front-end routes on r.
//
//	GET       /                       → list
//	GET       /students               → list, optional ?searchString=
//	GET|POST  /students/create        → create form / submit
//	GET|POST  /students/edit/{id}     → edit form / submit
//	GET|POST  /students/delete/{id}   → confirmation / delete
func Register(r chi.Router, h *Handler) {
	r.Get("/", h.serve(h.index))
	r.Route("/students", func(r chi.Router) {
		r.Get("/", h.serve(h.index))
		r.Get("/create", h.serve(h.createForm))
		r.Post("/create", h.serve(h.create))
		r.Get("/edit/{id}", h.serve(h.editForm))
		r.Post("/edit/{id}", h.serve(h.edit))
		r.Get("/delete/{id}", h.serve(h.deleteForm))
		r.Post("/delete/{id}", h.serve(h.delete))
	})
}

// result is the outcome of one action: a redirect when redirect is set,
// otherwise view rendered with data and status.
type result struct {
	redirect string
	status   int
	view     string
	data     page
}

func redirect(to string) result {
	return result{redirect: to}
}

func view(status int, name string, data page) result {
	return result{status: status, view: name, data: data}
}

func errorPage(status int, msg string) result {
	return view(status, viewError, page{Title: "Error", Errors: []string{msg}})
}

func (h *Handler) serve(action func(*http.Request) result) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := action(r)
		if res.redirect != "" {
			http.Redirect(w, r, res.redirect, http.StatusSeeOther)
			return
		}
		h.views.render(w, res.status, res.view, res.data)
	}
}

func (h *Handler) index(r *http.Request) result {
	search := r.URL.Query().Get("searchString")
	slog.Info("listing students", slog.String("search", search))

	students, err := h.api.List(r.Context(), search)
	if err != nil {
		return upstreamErrorPage("error listing students", err)
	}

	return view(http.StatusOK, viewIndex, page{
		Title:    "Students",
		Search:   search,
		Students: students,
	})
}

func (h *Handler) createForm(r *http.Request) result {
	return view(http.StatusOK, viewCreate, page{Title: "Create"})
}

func (h *Handler) create(r *http.Request) result {
	form := formFromRequest(r)
	data := page{Title: "Create", Form: form}

	student, fields := form.Student()
	if fields != nil {
		data.FieldErrors = fields
		return view(http.StatusOK, viewCreate, data)
	}

	// ids are assigned by the record service
	student.ID = 0

	created, err := h.api.Create(r.Context(), student)
	if err != nil {
		slog.Error("error creating student", logger.Err(err))
		data.Errors = []string{apiError(err)}
		data.FieldErrors = upstreamFields(err)
		return view(http.StatusOK, viewCreate, data)
	}

	slog.Info("student created", slog.Int64("id", created.ID))
	return redirect("/")
}

func (h *Handler) editForm(r *http.Request) result {
	id, ok := parseID(r)
	if !ok {
		return notFound()
	}

	student, err := h.api.Get(r.Context(), id)
	if err != nil {
		return getErrorPage(id, err)
	}

	return view(http.StatusOK, viewEdit, page{Title: "Edit", Form: formFromStudent(student)})
}

func (h *Handler) edit(r *http.Request) result {
	id, ok := parseID(r)
	if !ok {
		return notFound()
	}

	form := formFromRequest(r)
	if formID, err := strconv.ParseInt(form.ID, 10, 64); err != nil || formID != id {
		return errorPage(http.StatusBadRequest, "route id and form id must match")
	}

	data := page{Title: "Edit", Form: form}

	student, fields := form.Student()
	if fields != nil {
		data.FieldErrors = fields
		return view(http.StatusOK, viewEdit, data)
	}

	if err := h.api.Update(r.Context(), id, student); err != nil {
		slog.Error("error updating student", slog.Int64("id", id), logger.Err(err))
		data.Errors = []string{apiError(err)}
		data.FieldErrors = upstreamFields(err)
		return view(http.StatusOK, viewEdit, data)
	}

	slog.Info("student updated", slog.Int64("id", id))
	return redirect("/")
}

func (h *Handler) deleteForm(r *http.Request) result {
	id, ok := parseID(r)
	if !ok {
		return notFound()
	}

	student, err := h.api.Get(r.Context(), id)
	if err != nil {
		return getErrorPage(id, err)
	}

	return view(http.StatusOK, viewDelete, page{Title: "Delete", Student: student})
}

func (h *Handler) delete(r *http.Request) result {
	id, ok := parseID(r)
	if !ok {
		return notFound()
	}

	err := h.api.Delete(r.Context(), id)
	if err == nil {
		slog.Info("student deleted", slog.Int64("id", id))
		return redirect("/")
	}

	slog.Error("error deleting student", slog.Int64("id", id), logger.Err(err))
	msg := apiError(err)

	student, getErr := h.api.Get(r.Context(), id)
	if getErr != nil {
		slog.Error("error reloading student", slog.Int64("id", id), logger.Err(getErr))
		return errorPage(upstreamStatus(err), msg)
	}

	return view(http.StatusOK, viewDelete, page{
		Title:   "Delete",
		Student: student,
		Errors:  []string{msg},
	})
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func notFound() result {
	return errorPage(http.StatusNotFound, "student not found")
}

// getErrorPage maps a failed lookup: 404 passes through, anything else is
// a bad gateway.
func getErrorPage(id int64, err error) result {
	if errors.Is(err, studentapi.ErrNotFound) {
		return notFound()
	}
	slog.Error("error getting student", slog.Int64("id", id), logger.Err(err))
	return errorPage(http.StatusBadGateway, apiError(err))
}

func upstreamErrorPage(msg string, err error) result {
	slog.Error(msg, logger.Err(err))
	return errorPage(http.StatusBadGateway, apiError(err))
}

// upstreamStatus is the record service status carried by err, or 502
// when the call never produced one.
func upstreamStatus(err error) int {
	if code := studentapi.StatusCode(err); code != 0 {
		return code
	}
	return http.StatusBadGateway
}

func apiError(err error) string {
	return fmt.Sprintf("API error: %d", upstreamStatus(err))
}

// upstreamFields extracts the per-field messages of a record service
// validation response, if any.
func upstreamFields(err error) map[string]string {
	var se *studentapi.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest {
		return nil
	}

	var body response.Response
	if json.Unmarshal([]byte(se.Body), &body) != nil {
		return nil
	}
	return body.Fields
}
