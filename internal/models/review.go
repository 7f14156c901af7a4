package models

import "time"

type Review struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	ServiceID    string    `json:"service_id"`
	Rating       int       `json:"rating"` // 1..5
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Message is a contact-form submission, optionally tied to a booking.
type Message struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
