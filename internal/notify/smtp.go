package notify

import (
	"context"
	"crypto/tls"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/config"
	"github.com/mohit-756/interview-bot/internal/logger"
)

// SMTPMailer sends through an SMTP relay with STARTTLS and PLAIN auth
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	timeout  time.Duration
	log      *zap.Logger
}

// NewSMTPMailer creates a mailer from cfg. From defaults to the user.
func NewSMTPMailer(cfg config.MailConfig, log *zap.Logger) *SMTPMailer {
	log = logger.OrNop(log)
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = strings.TrimSpace(cfg.User)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &SMTPMailer{
		host:     strings.TrimSpace(cfg.Host),
		port:     cfg.Port,
		user:     strings.TrimSpace(cfg.User),
		password: strings.TrimSpace(cfg.Password),
		from:     from,
		timeout:  timeout,
		log:      log,
	}
}

// Configured reports whether all credentials are present
func (m *SMTPMailer) Configured() bool {
	return m.host != "" && m.user != "" && m.password != "" && m.from != ""
}

// Send delivers the message. Missing credentials return false without a dial.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) bool {
	if !m.Configured() {
		return false
	}
	if err := m.send(ctx, to, subject, body); err != nil {
		m.log.Debug("smtp send failed", zap.String("to", to), zap.Error(err))
		return false
	}
	return true
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
		return err
	}
	if err := c.Auth(smtp.PlainAuth("", m.user, m.password, m.host)); err != nil {
		return err
	}
	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(buildMessage(m.from, to, subject, body, time.Now())); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
