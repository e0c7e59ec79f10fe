package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("email: failed to send")
	ErrInvalidConfig     = errors.New("email: invalid config")
	ErrInvalidRecipient  = errors.New("email: invalid recipient address")
	ErrMissingSubject    = errors.New("email: missing subject")
	ErrMissingBody       = errors.New("email: missing body")
)
