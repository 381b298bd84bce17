package mailer

import (
	"context"

	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
)

// LogMailer writes messages to the application log instead of sending them.
// Default transport for dev and test environments.
type LogMailer struct {
	logg *logger.Logger
}

// NewLogMailer builds the log transport.
func NewLogMailer(logg *logger.Logger) *LogMailer {
	return &LogMailer{logg: logg}
}

// Send logs the message and reports success.
func (l *LogMailer) Send(ctx context.Context, msg Message) error {
	if l.logg == nil {
		return nil
	}
	ctx = l.logg.WithFields(ctx, map[string]any{
		"to":      msg.ToEmail,
		"subject": msg.Subject,
	})
	l.logg.Info(ctx, "outbound email suppressed by log transport")
	return nil
}
