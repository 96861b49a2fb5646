package mail

import (
	"context"

	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// Log is a development Mailer that writes messages to the service log
// instead of delivering them. Codes show up in the log output, which is
// what the e2e tests read them from.
type Log struct{}

func (Log) Send(ctx context.Context, to, subject, body string) error {
	slogx.FromContext(ctx).Info("mail suppressed",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
