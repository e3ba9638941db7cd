package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-app/internal/client/studentapi"
	"github.com/aanand-mishra/students-app/internal/http/handlers/student"
	"github.com/aanand-mishra/students-app/internal/storage/memory"
)

// TestEndToEnd drives the front end against a real record service backed
// by the in-memory store.
func TestEndToEnd(t *testing.T) {
	store := memory.New()

	api := chi.NewRouter()
	student.Register(api, store)
	upstream := httptest.NewServer(api)
	defer upstream.Close()

	client, err := studentapi.New(studentapi.Config{BaseURL: upstream.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	front := newRouter(t, client)

	rr := post(front, "/students/create", url.Values{"name": {"Alice"}, "email": {"alice@x.com"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	rr = post(front, "/students/create", url.Values{"name": {"Bob"}, "email": {"bob@x.com"}, "dateOfBirth": {"1999-12-31"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = get(front, "/students?searchString=Ali")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")
	assert.NotContains(t, rr.Body.String(), "Bob")

	rr = get(front, "/students/edit/2")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="1999-12-31"`)

	rr = post(front, "/students/edit/2", url.Values{"id": {"2"}, "name": {"Robert"}, "email": {"bob@x.com"}, "phone": {"555"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	bob, err := store.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Robert", bob.Name)
	require.NotNil(t, bob.Phone)
	assert.Equal(t, "555", *bob.Phone)
	assert.Nil(t, bob.DateOfBirth)

	rr = post(front, "/students/delete/1", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = get(front, "/students/delete/1")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = post(front, "/students/delete/1", url.Values{})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "API error: 404")

	rr = get(front, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Robert")
	assert.NotContains(t, rr.Body.String(), "Alice")
}

func TestEndToEnd_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	base := upstream.URL
	upstream.Close()

	client, err := studentapi.New(studentapi.Config{BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)
	front := newRouter(t, client)

	rr := get(front, "/")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "API error: 502")

	rr = post(front, "/students/create", url.Values{"name": {"Alice"}, "email": {"alice@x.com"}})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "API error: 502")
	assert.Contains(t, rr.Body.String(), `value="Alice"`)
}
