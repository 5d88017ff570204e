// Package notify delivers plain-text email. Senders never return errors to
// callers: a failed or unconfigured delivery is reported as false.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/config"
	"github.com/mohit-756/interview-bot/internal/logger"
)

// Notifier sends one plain-text message
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) bool
}

// New returns the sender selected by cfg.Provider. A Gmail sender that cannot
// be initialised degrades to one that always reports failure.
func New(ctx context.Context, cfg config.MailConfig, log *zap.Logger) Notifier {
	log = logger.OrNop(log).Named("notify")

	if cfg.Provider == config.MailGmail {
		g, err := NewGmailSender(ctx, cfg.GmailCredentials, cfg.GmailToken, cfg.From, log)
		if err != nil {
			log.Warn("gmail sender unavailable, mail disabled", zap.Error(err))
			return disabled{}
		}
		return g
	}
	return NewSMTPMailer(cfg, log)
}

type disabled struct{}

func (disabled) Send(context.Context, string, string, string) bool { return false }

// ScheduleSubject is the subject of the interview confirmation
const ScheduleSubject = "Interview scheduled successfully"

// ScheduleBody renders the interview confirmation text
func ScheduleBody(date, link string) string {
	return fmt.Sprintf("Your interview has been scheduled.\n\nDate and time: %s\nInterview link: %s\n", date, link)
}

// SendSchedule mails the interview link to a candidate. When delivery fails
// the link is logged so HR can pass it on by hand.
func SendSchedule(ctx context.Context, n Notifier, log *zap.Logger, to, date, link string) bool {
	if n != nil && n.Send(ctx, to, ScheduleSubject, ScheduleBody(date, link)) {
		return true
	}
	if log != nil {
		log.Warn("could not send interview email",
			zap.String("to", to),
			zap.String("link", link),
		)
	}
	return false
}

// buildMessage renders an RFC 5322 message with a plain-text body
func buildMessage(from, to, subject, body string, now time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(b.String())
}

func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
