package mail

import "context"

// Mailer delivers short plain-text messages to a single recipient.
// A failed Send is recoverable: callers keep their pending state so the
// message can be regenerated and resent.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
