package http

import (
	"context"
	"net/http"

	"github.com/curiousguyinhis30s/themepark-website/internal/app"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// ContactSubmitter is the minimal interface needed to accept contact forms.
type ContactSubmitter interface {
	Submit(ctx context.Context, in app.ContactInput) (domain.ContactMessage, error)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type contactResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

func HandleContact(svc ContactSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		msg, err := svc.Submit(r.Context(), app.ContactInput{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, contactResponse{
			Success: true,
			ID:      msg.ID,
			Message: "Thank you for reaching out. We will get back to you within 24 hours.",
		})
	}
}
