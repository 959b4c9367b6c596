package notification

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/abagtas/listahan/internal/config"
)

// Mailer sends ledger event emails to the shop owner via SMTP. Mail is
// skipped entirely when no SMTP host is configured.
type Mailer struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewMailer creates a new mailer
func NewMailer(cfg *config.Config, log *logrus.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// Enabled reports whether outgoing mail is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.SMTPHost != "" && m.cfg.NotifyEmail != ""
}

// SendEventMail sends a single ledger event summary to the owner.
func (m *Mailer) SendEventMail(n *Notification) error {
	if !m.Enabled() {
		return nil
	}

	e := email.NewEmail()
	e.From = m.cfg.SenderEmail
	e.To = []string{m.cfg.NotifyEmail}
	e.Subject = fmt.Sprintf("Ledger update: %s", n.Kind)

	body := fmt.Sprintf(
		"%s\n\nCustomer: %d\nCategory: %s\nAmount: %s\nTime: %s\n",
		n.Message, n.CustomerID, n.Category, n.AmountCentavos,
		time.Now().Format("2006-01-02 15:04:05"),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		m.log.Errorf("Failed to send event mail to %s: %v", m.cfg.NotifyEmail, err)
		return fmt.Errorf("failed to send event mail: %w", err)
	}

	m.log.Infof("Email sent to %s: %s", m.cfg.NotifyEmail, e.Subject)
	return nil
}
