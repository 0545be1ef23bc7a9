// Package mail delivers the rendered digest over SMTP. Delivery is the only
// fatal step of a run: an error here propagates to the caller, with no
// application-level retry.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"newsdigest/internal/logger"
	"newsdigest/internal/metrics"
)

type Sender struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewSender(host string, port int, username, password string) *Sender {
	return &Sender{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}
}

// Send delivers one HTML message to all recipients in a single authenticated
// session. The dialer upgrades to TLS via STARTTLS when the server offers it.
func (s *Sender) Send(subject, htmlBody, from string, recipients []string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send digest mail: %w", err)
	}

	metrics.Global.IncrementMailsSent()
	logger.Info("digest mail sent", "recipients", len(recipients))
	return nil
}
