package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/students-app/internal/logger"
	"github.com/aanand-mishra/students-app/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	viewIndex  = "index"
	viewCreate = "create"
	viewEdit   = "edit"
	viewDelete = "delete"
	viewError  = "error"
)

var viewNames = []string{viewIndex, viewCreate, viewEdit, viewDelete, viewError}

// page is the view model shared by every template.
type page struct {
	Title       string
	Search      string
	Students    []types.Student
	Student     types.Student
	Form        Form
	Errors      []string
	FieldErrors map[string]string
}

var funcs = template.FuncMap{
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(dateLayout)
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// views holds one template set per page, each parsed together with the
// layout so every page can define its own "content" block.
type views map[string]*template.Template

func parseViews() (views, error) {
	v := make(views, len(viewNames))
	for _, name := range viewNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		v[name] = t
	}
	return v, nil
}

// render executes into a buffer first so a template failure can still
// produce a clean 500.
func (v views) render(w http.ResponseWriter, status int, name string, data page) {
	t, ok := v[name]
	if !ok {
		slog.Error("unknown view", slog.String("view", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("error rendering view", slog.String("view", name), logger.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
