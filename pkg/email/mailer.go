package email

import (
	"context"
	"regexp"
)

// EmailSender delivers transactional email out-of-band.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks the minimum required fields for delivery.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" || !emailRegex.MatchString(p.SendTo) {
		return ErrInvalidRecipient
	}
	if p.Subject == "" {
		return ErrMissingSubject
	}
	if p.BodyHTML == "" {
		return ErrMissingBody
	}
	return nil
}
