package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckerDefaults(t *testing.T) {
	c := NewChecker(nil)

	assert.True(t, c.Has("student", "attempt:create"))
	assert.True(t, c.Has("student", "comment:create"))
	assert.False(t, c.Has("student", "question:create"))
	assert.False(t, c.Has("student", "attempt:view-all"))

	// Admin wildcard covers everything.
	assert.True(t, c.Has("admin", "question:create"))
	assert.True(t, c.Has("admin", "ai:extract"))

	assert.False(t, c.Has("unknown", "attempt:create"))
	assert.True(t, c.Any("student", "question:create", "training:run"))
	assert.False(t, c.Any("student", "question:create", "tags:write"))
}

func TestCheckerPrefixWildcard(t *testing.T) {
	c := NewChecker(map[string][]string{
		"reviewer": {"comment:*"},
	})
	assert.True(t, c.Has("reviewer", "comment:create"))
	assert.True(t, c.Has("reviewer", "comment:delete"))
	assert.False(t, c.Has("reviewer", "attempt:create"))
}

func TestRequireMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := Require("question:create")(next)

	// No role in context.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/api/admin/questions", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Student lacks the permission.
	req := httptest.NewRequest("POST", "/api/admin/questions", nil)
	req = req.WithContext(WithRole(req.Context(), "student"))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin passes.
	req = httptest.NewRequest("POST", "/api/admin/questions", nil)
	req = req.WithContext(WithRole(req.Context(), "admin"))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
