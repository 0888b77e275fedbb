package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
	"github.com/curiousguyinhis30s/themepark-website/internal/metrics"
	"github.com/curiousguyinhis30s/themepark-website/internal/validate"
)

// ContactSubjects are the topics offered on the contact form.
var ContactSubjects = []string{"general", "tickets", "feedback", "corporate", "lost", "other"}

const defaultContactSubject = "general"

type ContactRepository interface {
	CreateContactMessage(ctx context.Context, m domain.ContactMessage) error
}

type ContactService struct {
	repo   ContactRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewContactService(repo ContactRepository, clk clock.Clock, logger *slog.Logger) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{repo: repo, clock: clk, logger: logger}
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit validates and stores a contact form. An empty subject defaults to
// "general".
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (domain.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Subject == "" {
		in.Subject = defaultContactSubject
	}

	if fe := validateContact(in); !fe.Empty() {
		return domain.ContactMessage{}, fe
	}

	msg := domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateContactMessage(ctx, msg); err != nil {
		return domain.ContactMessage{}, err
	}

	metrics.ContactMessages.WithLabelValues(msg.Subject).Inc()
	s.logger.Info("contact message received", "id", msg.ID, "subject", msg.Subject)
	return msg, nil
}

func validateContact(in ContactInput) validate.FieldErrors {
	fe := validate.FieldErrors{}
	if in.Name == "" {
		fe.Add("name", "Name is required")
	}
	switch {
	case in.Email == "":
		fe.Add("email", "Email is required")
	case !validate.Email(in.Email):
		fe.Add("email", "Invalid email format")
	}
	if !knownSubject(in.Subject) {
		fe.Add("subject", "Unknown subject")
	}
	if in.Message == "" {
		fe.Add("message", "Message is required")
	}
	return fe
}

func knownSubject(subject string) bool {
	for _, s := range ContactSubjects {
		if s == subject {
			return true
		}
	}
	return false
}
