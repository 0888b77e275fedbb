package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/curiousguyinhis30s/themepark-website/internal/auth"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// VisitorAuth is the minimal interface needed for the sign-in endpoints.
type VisitorAuth interface {
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Current(ctx context.Context, token string) (auth.Session, error)
	Logout(ctx context.Context, token string) error
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type visitorBody struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar,omitempty"`
	MembershipTier string `json:"membershipTier"`
}

type sessionResponse struct {
	Token     string      `json:"token,omitempty"`
	User      visitorBody `json:"user"`
	DemoMode  bool        `json:"demoMode"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func toVisitorBody(v domain.Visitor) visitorBody {
	return visitorBody{
		ID:             v.ID,
		Email:          v.Email,
		Name:           v.Name,
		Avatar:         v.Avatar,
		MembershipTier: string(v.MembershipTier),
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func HandleLogin(svc VisitorAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{
			Token:     sess.Token,
			User:      toVisitorBody(sess.Visitor),
			DemoMode:  sess.DemoMode,
			ExpiresAt: sess.ExpiresAt,
		})
	}
}

func HandleLogout(svc VisitorAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), bearerToken(r)); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleMe returns the visitor bound to the bearer token.
func HandleMe(svc VisitorAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Current(r.Context(), bearerToken(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{
			User:      toVisitorBody(sess.Visitor),
			DemoMode:  sess.DemoMode,
			ExpiresAt: sess.ExpiresAt,
		})
	}
}

// HandleValidateRegistration checks a sign-up form without creating an
// account.
func HandleValidateRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		fe := auth.ValidateRegistration(auth.Registration{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		if err := fe.Err(); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
	}
}

// HandleDemoAccounts lists the sign-in shortcuts offered on the login page.
func HandleDemoAccounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts := auth.DemoAccounts()
		resp := make([]visitorBody, 0, len(accounts))
		for _, v := range accounts {
			resp = append(resp, toVisitorBody(v))
		}
		writeJSON(w, http.StatusOK, map[string]any{"accounts": resp, "password": auth.DemoPassword})
	}
}
