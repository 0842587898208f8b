package app

import (
	"context"

	"github.com/Shriprasad-P/Matrix-abacus-site/internal/domain"
)

type ContactService struct {
	mailer domain.Mailer
}

func NewContactService(m domain.Mailer) *ContactService {
	return &ContactService{mailer: m}
}

// Submit relays a contact-form message by email. Unlike review notifications,
// a relay failure here fails the request: the email is the whole point.
func (s *ContactService) Submit(ctx context.Context, m domain.ContactMessage) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return s.mailer.SendContactMessage(ctx, m)
}
