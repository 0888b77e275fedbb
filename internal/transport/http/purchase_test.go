package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
	"github.com/curiousguyinhis30s/themepark-website/internal/validate"
)

type stubPurchaser struct {
	gotReq domain.PurchaseRequest
	gotKey string
	result domain.PurchaseResult
	err    error
}

func (s *stubPurchaser) PurchaseWithKey(_ context.Context, req domain.PurchaseRequest, key string) (domain.PurchaseResult, error) {
	s.gotReq = req
	s.gotKey = key
	return s.result, s.err
}

func (s *stubPurchaser) Get(_ context.Context, id string) (domain.PurchaseResult, error) {
	if s.err != nil {
		return domain.PurchaseResult{}, s.err
	}
	return s.result, nil
}

func TestHandlePurchaseTickets(t *testing.T) {
	t.Parallel()

	success := domain.PurchaseResult{
		OrderID:          "order-123",
		TransactionID:    "txn_abc",
		ConfirmationCode: "TP-ABCD2345",
		TicketTypeID:     "day-pass",
		TicketName:       "Day Pass",
		Quantity:         2,
		VisitDate:        "2025-07-01",
		Email:            "visitor@demo.com",
		Subtotal:         198,
		ServiceFee:       5,
		Total:            203,
		CreatedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	validBody := `{"ticketTypeId":"day-pass","quantity":2,"visitDate":"2025-07-01","guestEmail":"visitor@demo.com",` +
		`"payment":{"method":"card","cardNumber":"4111111111111111","cardExpiry":"12/29","cardCvv":"123","cardHolder":"Sarah Lim"}}`

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           validBody,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"transactionId":"txn_abc"`,
		},
		{
			name:           "invalid json",
			body:           `{"ticketTypeId":`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "unknown field",
			body:           `{"ticketTypeId":"day-pass","coupon":"FREE"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-card payment",
			body:           strings.Replace(validBody, `"method":"card"`, `"method":"cash"`, 1),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "validation errors",
			body:           validBody,
			serviceErr:     validate.FieldErrors{"visitDate": "Visit date is required"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedSubstr: `"visitDate":"Visit date is required"`,
		},
		{
			name:           "unknown ticket type",
			body:           validBody,
			serviceErr:     domain.ErrTicketTypeNotFound,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedSubstr: codeTicketTypeNotFound,
		},
		{
			name:           "idempotency conflict",
			body:           validBody,
			serviceErr:     domain.ErrIdempotencyConflict,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "internal error",
			body:           validBody,
			serviceErr:     errors.New("db down"),
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: codeInternalError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubPurchaser{result: success, err: tc.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/api/tickets/purchase", strings.NewReader(tc.body))
			req.Header.Set("Idempotency-Key", "key-1")
			rec := httptest.NewRecorder()

			HandlePurchaseTickets(svc).ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tc.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %q", tc.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandlePurchaseTickets_MapsRequest(t *testing.T) {
	t.Parallel()

	svc := &stubPurchaser{result: domain.PurchaseResult{OrderID: "o1"}}
	body := `{"ticketTypeId":"family-pack","quantity":1,"visitDate":"2025-08-08","guestEmail":"family@demo.com",` +
		`"payment":{"cardNumber":"4000000000000002","cardExpiry":"01/30","cardCvv":"999","cardHolder":"Tan"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/tickets/purchase", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", "abc")
	rec := httptest.NewRecorder()

	HandlePurchaseTickets(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.gotKey != "abc" {
		t.Fatalf("expected idempotency key passed through, got %q", svc.gotKey)
	}
	if svc.gotReq.Payment.Email != "family@demo.com" || svc.gotReq.TicketTypeID != "family-pack" {
		t.Fatalf("unexpected request: %+v", svc.gotReq)
	}

	var resp purchaseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Order.ID != "o1" || resp.Payment.Status != "succeeded" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleGetPurchase(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	svc := &stubPurchaser{err: domain.ErrPurchaseNotFound}
	r.Get("/api/tickets/purchases/{id}", HandleGetPurchase(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/tickets/purchases/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), codePurchaseNotFound) {
		t.Fatalf("expected 404 purchase_not_found, got %d %s", rec.Code, rec.Body.String())
	}
}
