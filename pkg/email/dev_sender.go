package email

import (
	"context"
	"log/slog"
)

// DevSender implements EmailSender for local development: it logs the email
// instead of delivering it, so the OTP code is visible in process output.
type DevSender struct {
	log *slog.Logger
}

// NewDevSender creates a development email sender that logs deliveries.
func NewDevSender(log *slog.Logger) EmailSender {
	return &DevSender{log: log}
}

// SendEmail logs the email at info level.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	d.log.InfoContext(ctx, "dev email delivery",
		slog.String("send_to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("body", params.BodyHTML),
		slog.String("tag", params.Tag),
	)
	return nil
}
