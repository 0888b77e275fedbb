package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
	"github.com/curiousguyinhis30s/themepark-website/internal/validate"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeValidationFailed    = "validation_failed"
	codeInvalidQuantity     = "invalid_quantity"
	codeInvalidVisitDate    = "invalid_visit_date"
	codeVisitDateRequired   = "visit_date_required"
	codeNoTicketSelected    = "no_ticket_selected"
	codeTicketTypeNotFound  = "ticket_type_not_found"
	codePaymentIncomplete   = "payment_incomplete"
	codePaymentInProgress   = "payment_in_progress"
	codeInvalidStep         = "invalid_step"
	codeSessionNotFound     = "session_not_found"
	codePurchaseNotFound    = "purchase_not_found"
	codeIdempotencyConflict = "idempotency_conflict"
	codeRequestInProgress   = "request_in_progress"
	codeInvalidCredentials  = "invalid_credentials"
	codeUnauthenticated     = "unauthenticated"
	codeForbidden           = "forbidden"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps service errors to status codes. Unknown errors
// become a generic 500 so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		writeErrorResponse(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Code:   codeValidationFailed,
			Fields: fe,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, codeSessionNotFound, err.Error())
	case errors.Is(err, domain.ErrPurchaseNotFound):
		writeError(w, http.StatusNotFound, codePurchaseNotFound, err.Error())
	case errors.Is(err, domain.ErrTicketTypeNotFound):
		writeError(w, http.StatusUnprocessableEntity, codeTicketTypeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidVisitDate):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidVisitDate, err.Error())
	case errors.Is(err, domain.ErrVisitDateRequired):
		writeError(w, http.StatusConflict, codeVisitDateRequired, err.Error())
	case errors.Is(err, domain.ErrNoTicketSelected):
		writeError(w, http.StatusConflict, codeNoTicketSelected, err.Error())
	case errors.Is(err, domain.ErrPaymentIncomplete):
		writeError(w, http.StatusConflict, codePaymentIncomplete, err.Error())
	case errors.Is(err, domain.ErrPaymentInProgress):
		writeError(w, http.StatusConflict, codePaymentInProgress, err.Error())
	case errors.Is(err, domain.ErrInvalidStep):
		writeError(w, http.StatusConflict, codeInvalidStep, err.Error())
	case errors.Is(err, domain.ErrIdempotencyConflict):
		writeError(w, http.StatusConflict, codeIdempotencyConflict, err.Error())
	case errors.Is(err, domain.ErrRequestInProgress):
		writeError(w, http.StatusConflict, codeRequestInProgress, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a strict JSON body into dst, answering 400 itself on
// failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	return true
}
