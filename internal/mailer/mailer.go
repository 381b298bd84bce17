package mailer

import (
	"context"
	"fmt"

	"github.com/harborview-hotels/frontdesk-backend/pkg/config"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
)

// Message is one outbound email.
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends outbound email through a configured transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// FromConfig selects the transport named by the mail configuration.
func FromConfig(cfg config.MailConfig, logg *logger.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "mailersend":
		return NewMailerSend(cfg.MailerSendAPIKey, cfg.FromName, cfg.FromEmail)
	case "smtp":
		return NewSMTP(cfg)
	case "log", "":
		return NewLogMailer(logg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
