package domain

import "errors"

var (
	ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

	ErrSessionNotFound = errors.New("session not found")

	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrNoTicketSelected   = errors.New("no ticket type selected")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrVisitDateRequired  = errors.New("visit date required")
	ErrInvalidVisitDate   = errors.New("invalid visit date")
	ErrPaymentIncomplete  = errors.New("payment details incomplete")
	ErrPaymentInProgress  = errors.New("payment already in progress")
	ErrInvalidStep        = errors.New("action not allowed at this step")
	ErrInvalidEmail       = errors.New("invalid email")

	ErrPurchaseNotFound    = errors.New("purchase not found")
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	ErrRequestInProgress   = errors.New("request with this idempotency key is in progress")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")

	ErrInvalidContact = errors.New("invalid contact message")
)
