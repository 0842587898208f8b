package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// ContactMessage is a contact-form submission. It is relayed by email and
// never persisted.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (m ContactMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalid)
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("%w: email is not a valid address", ErrInvalid)
	}
	if strings.TrimSpace(m.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalid)
	}
	return nil
}
