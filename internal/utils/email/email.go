package email

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/jarwatch/jarwatch/internal/config"
)

// Sender handles sending report emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendReport sends the report text with the chart image attached
func (s *Sender) SendReport(subject, body string, chartPNG []byte) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.ReportEmail}
	e.Subject = subject
	e.Text = []byte(body)

	if len(chartPNG) > 0 {
		if _, err := e.Attach(bytes.NewReader(chartPNG), "jars.png", "image/png"); err != nil {
			return fmt.Errorf("failed to attach chart: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send report email to %s: %v", s.cfg.ReportEmail, err)
		return fmt.Errorf("failed to send report email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.ReportEmail, subject)
	return nil
}
