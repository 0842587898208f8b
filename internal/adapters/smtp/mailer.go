package smtp

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Shriprasad-P/Matrix-abacus-site/internal/adapters/observability"
	"github.com/Shriprasad-P/Matrix-abacus-site/internal/domain"
)

var reviewTmpl = template.Must(template.New("review").Parse(
	`A new review was submitted.

Location: {{.LocationName}}{{if .LocationAddress}} ({{.LocationAddress}}){{end}}
Author:   {{.Author}}{{if .Email}} <{{.Email}}>{{end}}
Rating:   {{.Rating}}/5
Date:     {{.CreatedAt.Format "2006-01-02 15:04 MST"}}

{{.Text}}
`))

var contactTmpl = template.Must(template.New("contact").Parse(
	`New contact-form message.

From: {{.Name}} <{{.Email}}>
{{if .Subject}}Subject: {{.Subject}}
{{end}}
{{.Message}}
`))

// Mailer relays notification emails to MAIL_TO via a single SMTP relay.
type Mailer struct {
	from string
	to   string

	// send is swapped out in tests.
	send func(m *gomail.Message) error
}

func New(host string, port int, user, pass, from, to string) *Mailer {
	d := gomail.NewDialer(host, port, user, pass)
	return &Mailer{
		from: from,
		to:   to,
		send: func(m *gomail.Message) error { return d.DialAndSend(m) },
	}
}

func (m *Mailer) SendReviewNotification(ctx context.Context, r domain.Review) error {
	msg, err := m.buildReviewMessage(r)
	if err != nil {
		return err
	}
	return m.deliver(ctx, "review_notification", msg)
}

func (m *Mailer) SendContactMessage(ctx context.Context, c domain.ContactMessage) error {
	msg, err := m.buildContactMessage(c)
	if err != nil {
		return err
	}
	return m.deliver(ctx, "contact", msg)
}

func (m *Mailer) deliver(ctx context.Context, kind string, msg *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := m.send(msg)
	observability.ObserveMail(kind, err, time.Since(start))
	if err != nil {
		return fmt.Errorf("send %s email: %w", kind, err)
	}
	return nil
}

func (m *Mailer) buildReviewMessage(r domain.Review) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := reviewTmpl.Execute(&body, r); err != nil {
		return nil, err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("New review: %s (%d/5)", r.LocationName, r.Rating))
	if r.Email != "" {
		msg.SetHeader("Reply-To", r.Email)
	}
	msg.SetBody("text/plain", body.String())
	return msg, nil
}

func (m *Mailer) buildContactMessage(c domain.ContactMessage) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, c); err != nil {
		return nil, err
	}
	subject := c.Subject
	if subject == "" {
		subject = "Message from " + c.Name
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Reply-To", c.Email)
	msg.SetHeader("Subject", "Contact form: "+subject)
	msg.SetBody("text/plain", body.String())
	return msg, nil
}
