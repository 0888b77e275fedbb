package domain

import "time"

// TicketType is a sellable admission product. Prices are whole ringgit.
type TicketType struct {
	ID          string
	Name        string
	Description string
	Price       int
	Color       string
	Features    []string
}

// PaymentForm holds card details as typed by the visitor. It is never persisted.
type PaymentForm struct {
	CardNumber string
	CardExpiry string
	CardCvv    string
	CardHolder string
	Email      string
}

// PurchaseRequest is a fully specified order ready to be charged.
type PurchaseRequest struct {
	TicketTypeID string
	Quantity     int
	VisitDate    string
	Payment      PaymentForm
}

// PurchaseResult is the outcome of a successful purchase.
type PurchaseResult struct {
	OrderID          string
	TransactionID    string
	ConfirmationCode string
	TicketTypeID     string
	TicketName       string
	Quantity         int
	VisitDate        string
	Email            string
	Subtotal         int
	ServiceFee       int
	Total            int
	CreatedAt        time.Time
}
