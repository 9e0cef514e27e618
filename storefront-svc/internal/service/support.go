package service

import (
	"strings"

	"cafenine/storefront-svc/internal/domain"
)

const (
	guestName  = "Guest"
	guestEmail = "guest@cafenine.com"
)

type SupportRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewSupportTicket fills contact details from the signed-in member when the form
// leaves them blank, and from the guest placeholders otherwise.
func NewSupportTicket(user *domain.UserProfile, req SupportRequest) (domain.SupportTicket, error) {
	ticket := domain.SupportTicket{
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeEmail(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if ticket.Message == "" {
		return domain.SupportTicket{}, ErrEmptyMessage
	}
	if user != nil {
		ticket.UserID = user.ID
		if ticket.Name == "" {
			ticket.Name = user.FullName
		}
		if ticket.Email == "" {
			ticket.Email = user.Email
		}
	}
	if ticket.Name == "" {
		ticket.Name = guestName
	}
	if ticket.Email == "" {
		ticket.Email = guestEmail
	}
	if ticket.Subject == "" {
		ticket.Subject = "General enquiry"
	}
	return ticket, nil
}
