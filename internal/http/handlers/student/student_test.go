package student

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-app/internal/storage"
	"github.com/aanand-mishra/students-app/internal/storage/memory"
	"github.com/aanand-mishra/students-app/internal/storage/mocks"
	"github.com/aanand-mishra/students-app/internal/types"
	"github.com/aanand-mishra/students-app/internal/utils/response"
)

func newRouter(s storage.Storage) http.Handler {
	r := chi.NewRouter()
	Register(r, s)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func seed(t *testing.T, s storage.Storage, names ...string) []types.Student {
	t.Helper()
	out := make([]types.Student, 0, len(names))
	for _, n := range names {
		created, err := s.Create(context.Background(), types.Student{Name: n, Email: "x@x.com"})
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func TestCreate(t *testing.T) {
	s := memory.New()
	h := newRouter(s)

	rr := do(t, h, http.MethodPost, "/api/students", `{"id":42,"name":"Alice","email":"alice@x.com"}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "/api/students/1", rr.Header().Get("Location"))
	assert.JSONEq(t,
		`{"id":1,"name":"Alice","email":"alice@x.com","phone":null,"dateOfBirth":null}`,
		rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/students/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"id":1,"name":"Alice","email":"alice@x.com","phone":null,"dateOfBirth":null}`,
		rr.Body.String())
}

func TestCreate_RoundTripsOptionalFields(t *testing.T) {
	h := newRouter(memory.New())

	body := `{"name":"Alice","email":"alice@x.com","phone":"555-0100","dateOfBirth":"2001-03-04T00:00:00Z"}`
	rr := do(t, h, http.MethodPost, "/api/students", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/students/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"id":1,"name":"Alice","email":"alice@x.com","phone":"555-0100","dateOfBirth":"2001-03-04T00:00:00Z"}`,
		rr.Body.String())
}

func TestCreate_BadRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields map[string]string
	}{
		{
			name: "empty name and malformed email",
			body: `{"name":"","email":"bad"}`,
			wantFields: map[string]string{
				"name":  "name is required",
				"email": "email must be a valid email address",
			},
		},
		{
			name:       "blank name",
			body:       `{"name":"  ","email":"a@x.com"}`,
			wantFields: map[string]string{"name": "name is required"},
		},
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := memory.New()
			h := newRouter(s)

			rr := do(t, h, http.MethodPost, "/api/students", tt.body)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			resp := decode[response.Response](t, rr)
			assert.Equal(t, response.StatusError, resp.Status)
			assert.NotEmpty(t, resp.Error)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, resp.Fields)
			}

			all, err := s.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all, "nothing may be persisted")
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	h := newRouter(memory.New())

	for _, target := range []string{"/api/students/99", "/api/students/abc"} {
		rr := do(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, target)
	}
}

func TestGetList(t *testing.T) {
	s := memory.New()
	seed(t, s, "Alice Smith", "Bob", "Malice")
	h := newRouter(s)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "no term", target: "/api/students", want: []string{"Alice Smith", "Bob", "Malice"}},
		{name: "empty term", target: "/api/students?searchString=", want: []string{"Alice Smith", "Bob", "Malice"}},
		{name: "blank term", target: "/api/students?searchString=%20%20", want: []string{"Alice Smith", "Bob", "Malice"}},
		{name: "substring", target: "/api/students?searchString=lice", want: []string{"Alice Smith", "Malice"}},
		{name: "with space", target: "/api/students?searchString=e+S", want: []string{"Alice Smith"}},
		{name: "case sensitive", target: "/api/students?searchString=bob", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rr.Code)

			got := decode[[]types.Student](t, rr)
			names := make([]string, 0, len(got))
			for _, st := range got {
				names = append(names, st.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestGetList_EmptyIsArray(t *testing.T) {
	rr := do(t, newRouter(memory.New()), http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestUpdate(t *testing.T) {
	s := memory.New()
	seed(t, s, "Alice", "Bob")
	h := newRouter(s)

	rr := do(t, h, http.MethodPut, "/api/students/2",
		`{"id":2,"name":"Robert","email":"robert@x.com","phone":"555-0101"}`)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	got, err := s.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Robert", got.Name)
	assert.Equal(t, "robert@x.com", got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0101", *got.Phone)
}

func TestUpdate_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
	}{
		{name: "id mismatch", target: "/api/students/2", body: `{"id":3,"name":"X","email":"x@x.com"}`, wantCode: http.StatusBadRequest},
		{name: "id mismatch with invalid body", target: "/api/students/2", body: `{"id":3,"name":"","email":"bad"}`, wantCode: http.StatusBadRequest},
		{name: "missing body id", target: "/api/students/2", body: `{"name":"X","email":"x@x.com"}`, wantCode: http.StatusBadRequest},
		{name: "invalid body", target: "/api/students/2", body: `{"id":2,"name":"","email":"x@x.com"}`, wantCode: http.StatusBadRequest},
		{name: "empty body", target: "/api/students/2", body: "", wantCode: http.StatusBadRequest},
		{name: "unknown id", target: "/api/students/99", body: `{"id":99,"name":"X","email":"x@x.com"}`, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := memory.New()
			seed(t, s, "Alice", "Bob", "Carol")
			before, err := s.List(context.Background())
			require.NoError(t, err)

			rr := do(t, newRouter(s), http.MethodPut, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, rr.Code, rr.Body.String())

			after, err := s.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, before, after, "store must be unchanged")
		})
	}
}

func TestDelete(t *testing.T) {
	s := memory.New()
	seed(t, s, "Alice")
	h := newRouter(s)

	rr := do(t, h, http.MethodDelete, "/api/students/1", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/students/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/students/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDelete_NotFound(t *testing.T) {
	rr := do(t, newRouter(memory.New()), http.MethodDelete, "/api/students/99", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlers_StorageFailure(t *testing.T) {
	dbErr := errors.New("database failure")

	tests := []struct {
		name      string
		handler   func(storage.Storage) http.HandlerFunc
		method    string
		id        string
		body      string
		mockSetup func(m *mocks.MockStorage)
	}{
		{
			name:    "list",
			handler: GetList,
			method:  http.MethodGet,
			mockSetup: func(m *mocks.MockStorage) {
				m.EXPECT().List(gomock.Any()).Return(nil, dbErr)
			},
		},
		{
			name:    "get",
			handler: GetByID,
			method:  http.MethodGet,
			id:      "1",
			mockSetup: func(m *mocks.MockStorage) {
				m.EXPECT().GetByID(gomock.Any(), int64(1)).Return(types.Student{}, dbErr)
			},
		},
		{
			name:    "create",
			handler: New,
			method:  http.MethodPost,
			body:    `{"name":"Alice","email":"alice@x.com"}`,
			mockSetup: func(m *mocks.MockStorage) {
				m.EXPECT().
					Create(gomock.Any(), types.Student{Name: "Alice", Email: "alice@x.com"}).
					Return(types.Student{}, dbErr)
			},
		},
		{
			name:    "update",
			handler: Update,
			method:  http.MethodPut,
			id:      "1",
			body:    `{"id":1,"name":"Alice","email":"alice@x.com"}`,
			mockSetup: func(m *mocks.MockStorage) {
				m.EXPECT().GetByID(gomock.Any(), int64(1)).Return(types.Student{ID: 1}, nil)
				m.EXPECT().Update(gomock.Any(), gomock.Any()).Return(dbErr)
			},
		},
		{
			name:    "delete",
			handler: Delete,
			method:  http.MethodDelete,
			id:      "1",
			mockSetup: func(m *mocks.MockStorage) {
				m.EXPECT().Delete(gomock.Any(), int64(1)).Return(dbErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mocks.NewMockStorage(ctrl)
			tt.mockSetup(m)

			req := httptest.NewRequest(tt.method, "/api/students", bytes.NewBufferString(tt.body))
			if tt.id != "" {
				req.SetPathValue("id", tt.id)
			}
			rr := httptest.NewRecorder()

			tt.handler(m)(rr, req)

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			resp := decode[response.Response](t, rr)
			assert.Equal(t, "database failure", resp.Error)
		})
	}
}

func TestUpdate_IdMismatchNeverTouchesStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no expectations: any storage call fails the test
	m := mocks.NewMockStorage(ctrl)

	req := httptest.NewRequest(http.MethodPut, "/api/students/2", bytes.NewBufferString(`{"id":3,"name":"A","email":"a@x.com"}`))
	req.SetPathValue("id", "2")
	rr := httptest.NewRecorder()

	Update(m)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, errIDMismatch.Error(), decode[response.Response](t, rr).Error)
}
