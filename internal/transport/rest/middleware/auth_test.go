package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type fakeAuthorizer map[string]string

func (f fakeAuthorizer) Authorize(token, sessionID string) error {
	if f[token] != sessionID {
		return errors.New("denied")
	}
	return nil
}

func newAuthRouter() *mux.Router {
	mw := NewAuthMiddleware(fakeAuthorizer{"tok-a": "a", "tok-b": "b"})
	r := mux.NewRouter()
	s := r.PathPrefix("/sessions/{id}").Subrouter()
	s.Use(mw.RequireSession)
	s.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetSessionID(r.Context())))
	})
	return r
}

func TestRequireSession(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		status int
	}{
		{"bearer", "/sessions/a", "Authorization", "Bearer tok-a", http.StatusOK},
		{"bearer lowercase scheme", "/sessions/a", "Authorization", "bearer tok-a", http.StatusOK},
		{"session header", "/sessions/b", SessionHeader, "tok-b", http.StatusOK},
		{"missing", "/sessions/a", "", "", http.StatusUnauthorized},
		{"other session", "/sessions/a", "Authorization", "Bearer tok-b", http.StatusUnauthorized},
		{"wrong scheme", "/sessions/a", "Authorization", "Basic tok-a", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequireSession_SetsContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sessions/a", nil)
	req.Header.Set("Authorization", "Bearer tok-a")
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, req)
	assert.Equal(t, "a", rec.Body.String())
}
