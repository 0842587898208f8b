package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type Review struct {
	ID              string    `json:"id"`
	LocationName    string    `json:"locationName"`
	LocationAddress string    `json:"locationAddress,omitempty"`
	Author          string    `json:"author"`
	Email           string    `json:"email,omitempty"`
	Rating          int       `json:"rating"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Validate checks the user-supplied fields; ID and CreatedAt are server-set.
func (r Review) Validate() error {
	if strings.TrimSpace(r.LocationName) == "" {
		return fmt.Errorf("%w: locationName is required", ErrInvalid)
	}
	if strings.TrimSpace(r.Author) == "" {
		return fmt.Errorf("%w: author is required", ErrInvalid)
	}
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalid)
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("%w: email is not a valid address", ErrInvalid)
		}
	}
	return nil
}
