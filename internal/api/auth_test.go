package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"renvask/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedConfig() config.APIConfig {
	return config.APIConfig{
		Enabled: true,
		HTTP:    config.APIHTTPConfig{Enabled: true},
		Auth: config.APIAuthConfig{
			Enabled: true,
			APIKeys: []config.APIClientKey{
				{Key: "frontend-key", Extra: "frontend-extra", Name: "frontend", Permissions: []string{"read:catalog", "read:availability", "write:bookings", "read:bookings"}},
				{Key: "readonly-key", Extra: "readonly-extra", Name: "readonly", Permissions: []string{"read:catalog"}},
				{Key: "admin-key", Extra: "admin-extra", Name: "backoffice"},
			},
		},
	}
}

func doAuthed(t *testing.T, handler http.Handler, method, path, key, extra string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set("x-api-key", key)
	}
	if extra != "" {
		req.Header.Set("x-api-extra", extra)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestAuthMissingHeaders(t *testing.T) {
	f := newServerFixture(t, authedConfig())

	rr := doAuthed(t, f.handler, http.MethodGet, "/api/v1/services", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doAuthed(t, f.handler, http.MethodGet, "/api/v1/services", "frontend-key", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthInvalidCredentials(t *testing.T) {
	f := newServerFixture(t, authedConfig())

	rr := doAuthed(t, f.handler, http.MethodGet, "/api/v1/services", "no-such-key", "whatever")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doAuthed(t, f.handler, http.MethodGet, "/api/v1/services", "frontend-key", "wrong-extra")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthPermissions(t *testing.T) {
	f := newServerFixture(t, authedConfig())

	rr := doAuthed(t, f.handler, http.MethodGet, "/api/v1/services", "frontend-key", "frontend-extra")
	assert.Equal(t, http.StatusOK, rr.Code)

	// The readonly client may read the catalog but not the calendar.
	rr = doAuthed(t, f.handler, http.MethodGet, "/api/v1/services", "readonly-key", "readonly-extra")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doAuthed(t, f.handler, http.MethodGet, "/api/v1/slots?date=2026-03-02", "readonly-key", "readonly-extra")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doAuthed(t, f.handler, http.MethodGet, "/api/v1/admin/customers", "readonly-key", "readonly-extra")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// An empty permissions list allows everything.
	rr = doAuthed(t, f.handler, http.MethodGet, "/api/v1/admin/customers", "admin-key", "admin-extra")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthRateLimit(t *testing.T) {
	cfg := authedConfig()
	cfg.RateLimit = config.APIRateLimitConfig{RPS: 1, Burst: 1}
	f := newServerFixture(t, cfg)

	rr := doAuthed(t, f.handler, http.MethodGet, "/api/v1/services", "frontend-key", "frontend-extra")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doAuthed(t, f.handler, http.MethodGet, "/api/v1/services", "frontend-key", "frontend-extra")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestRequiredPermission(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/services", "read:catalog"},
		{http.MethodPost, "/api/v1/quote", "read:catalog"},
		{http.MethodGet, "/api/v1/slots", "read:availability"},
		{http.MethodGet, "/api/v1/slots/month", "read:availability"},
		{http.MethodPost, "/api/v1/sessions", "write:bookings"},
		{http.MethodGet, "/api/v1/sessions/abc", "read:bookings"},
		{http.MethodGet, "/api/v1/bookings/RV-1", "read:bookings"},
		{http.MethodPost, "/api/v1/reviews", "write:bookings"},
		{http.MethodGet, "/api/v1/admin/customers", "admin"},
		{http.MethodGet, "/metrics", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		assert.Equal(t, tc.want, requiredPermission(req), "%s %s", tc.method, tc.path)
	}
}
