package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/harborview-hotels/frontdesk-backend/pkg/config"
)

// SMTP delivers mail through a plain SMTP relay. Covers local catchers such
// as Mailpit (no auth) and authenticated STARTTLS relays.
type SMTP struct {
	addr string
	host string
	from string
	user string
	pass string
}

// NewSMTP builds the SMTP transport from the mail configuration.
func NewSMTP(cfg config.MailConfig) (*SMTP, error) {
	host := strings.TrimSpace(cfg.SMTPHost)
	if host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("smtp from email is required")
	}
	return &SMTP{
		addr: fmt.Sprintf("%s:%d", host, cfg.SMTPPort),
		host: host,
		from: cfg.FromEmail,
		user: strings.TrimSpace(cfg.SMTPUser),
		pass: cfg.SMTPPass,
	}, nil
}

// Send delivers one message as multipart/alternative.
func (s *SMTP) Send(_ context.Context, msg Message) error {
	to := strings.TrimSpace(msg.ToEmail)
	if to == "" {
		return fmt.Errorf("empty recipient email")
	}

	var buf bytes.Buffer
	boundary := "alt-boundary"
	fmt.Fprintf(&buf, "From: %s\r\n", s.from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", msg.Text)

	if msg.HTML != "" {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
		fmt.Fprintf(&buf, "%s\r\n\r\n", msg.HTML)
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}
	return smtp.SendMail(s.addr, auth, s.from, []string{to}, buf.Bytes())
}
