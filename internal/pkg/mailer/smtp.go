package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/config"
)

var ErrNotifierDisabled = errors.New("email notifications are disabled")

// SettingsSource returns the SMTP settings in effect at send time.
type SettingsSource interface {
	Snapshot() config.SMTPSettings
}

type SMTPNotifier struct {
	settings SettingsSource
	timeout  time.Duration
}

func NewSMTPNotifier(settings SettingsSource) *SMTPNotifier {
	return &SMTPNotifier{
		settings: settings,
		timeout:  10 * time.Second,
	}
}

func (n *SMTPNotifier) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	conf := n.settings.Snapshot()
	if !conf.Enabled {
		return ErrNotifierDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	addr := net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port))
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("DialContext -> %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, conf.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp.NewClient -> %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(&tls.Config{ServerName: conf.Host}); err != nil {
			return fmt.Errorf("client.StartTLS -> %w", err)
		}
	}

	if conf.Username != "" {
		auth := smtp.PlainAuth("", conf.Username, conf.Password, conf.Host)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("client.Auth -> %w", err)
		}
	}

	if err = client.Mail(conf.From); err != nil {
		return fmt.Errorf("client.Mail -> %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("client.Rcpt -> %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("client.Data -> %w", err)
	}
	if _, err = w.Write(buildMessage(conf.From, to, subject, htmlBody)); err != nil {
		return fmt.Errorf("w.Write -> %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("w.Close -> %w", err)
	}

	return client.Quit()
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	return []byte(b.String())
}
