package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/curiousguyinhis30s/themepark-website/internal/auth"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
)

func newAuthRouter() http.Handler {
	now := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	svc := auth.NewService(auth.NewMemoryStore(func() time.Time { return now }), clock.NewFixed(now))

	r := chi.NewRouter()
	r.Post("/auth/login", HandleLogin(svc))
	r.Post("/auth/logout", HandleLogout(svc))
	r.Get("/auth/me", HandleMe(svc))
	r.Get("/auth/demo-accounts", HandleDemoAccounts())
	r.Post("/auth/register/validate", HandleValidateRegistration())
	return r
}

func withBearer(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandlers_LoginMeLogout(t *testing.T) {
	t.Parallel()

	h := newAuthRouter()

	rec := doJSON(t, h, http.MethodPost, "/auth/login", `{"email":"family@demo.com","password":"`+auth.DemoPassword+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	sess := decodeBody[sessionResponse](t, rec)
	if sess.Token == "" || !sess.DemoMode || sess.User.MembershipTier != "platinum" {
		t.Fatalf("unexpected session %+v", sess)
	}

	rec = withBearer(h, http.MethodGet, "/auth/me", sess.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from me, got %d", rec.Code)
	}
	me := decodeBody[sessionResponse](t, rec)
	if me.Token != "" || me.User.Email != "family@demo.com" {
		t.Fatalf("unexpected me response %+v", me)
	}

	if rec := withBearer(h, http.MethodPost, "/auth/logout", sess.Token); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 from logout, got %d", rec.Code)
	}
	rec = withBearer(h, http.MethodGet, "/auth/me", sess.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
	if got := decodeBody[errorResponse](t, rec); got.Code != codeUnauthenticated {
		t.Fatalf("expected code %q, got %q", codeUnauthenticated, got.Code)
	}
}

func TestAuthHandlers_LoginRejected(t *testing.T) {
	t.Parallel()

	h := newAuthRouter()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "wrong password",
			body:       `{"email":"visitor@demo.com","password":"Wrong1234"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   codeInvalidCredentials,
		},
		{
			name:       "missing email",
			body:       `{"email":"","password":"Demo1234"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   codeValidationFailed,
			wantField:  "email",
		},
		{
			name:       "malformed",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   codeInvalidRequestBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/auth/login", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			got := decodeBody[errorResponse](t, rec)
			if got.Code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, got.Code)
			}
			if tt.wantField != "" && got.Fields[tt.wantField] == "" {
				t.Fatalf("expected field error on %q, got %+v", tt.wantField, got.Fields)
			}
		})
	}
}

func TestAuthHandlers_ValidateRegistration(t *testing.T) {
	t.Parallel()

	h := newAuthRouter()

	ok := doJSON(t, h, http.MethodPost, "/auth/register/validate",
		`{"name":"Aisha","email":"aisha@example.com","password":"Secret123","confirmPassword":"Secret123"}`)
	if ok.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ok.Code, ok.Body.String())
	}

	bad := doJSON(t, h, http.MethodPost, "/auth/register/validate",
		`{"name":"","email":"aisha@example.com","password":"Secret123","confirmPassword":"Secret124"}`)
	if bad.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", bad.Code)
	}
	fields := decodeBody[errorResponse](t, bad).Fields
	if fields["name"] == "" || fields["confirmPassword"] == "" {
		t.Fatalf("expected name and confirmPassword errors, got %+v", fields)
	}
}

func TestAuthHandlers_DemoAccounts(t *testing.T) {
	t.Parallel()

	rec := withBearer(newAuthRouter(), http.MethodGet, "/auth/demo-accounts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "visitor@demo.com") || !strings.Contains(rec.Body.String(), auth.DemoPassword) {
		t.Fatalf("expected demo accounts in body, got %s", rec.Body.String())
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(req); got != tt.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
