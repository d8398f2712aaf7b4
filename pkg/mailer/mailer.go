package mailer

import (
	"fmt"
	"net/smtp"

	"watch-store/pkg/utils"

	"go.uber.org/zap"
)

// Sender delivers transactional mail through the external provider.
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	cfg utils.EmailConfig
	log *zap.Logger
}

func NewSender(cfg utils.EmailConfig, log *zap.Logger) Sender {
	return &smtpSender{
		cfg: cfg,
		log: log.With(zap.String("component", "mailer")),
	}
}

func (s *smtpSender) Send(to, subject, body string) error {
	addr := s.cfg.Host + ":" + s.cfg.Port

	msg := "From: " + s.cfg.FromName + " <" + s.cfg.From + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	if err := smtp.SendMail(addr, nil, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		s.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject))
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}

// OTPBody formats the one-time code message
func OTPBody(code string, expiryMinutes int) string {
	return fmt.Sprintf(
		"Your verification code is: %s\n\nIt expires in %d minutes. If you did not request this code, ignore this message.",
		code, expiryMinutes)
}
