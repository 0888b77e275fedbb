package domain

import "time"

// ContactMessage is a visitor enquiry submitted through the contact form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}
