package service

import (
	"fmt"
	"healthlearn_backend/internal/config"
	"healthlearn_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer abstracts outbound mail so the reset flow can run without SMTP in
// development and tests.
type Mailer interface {
	SendOTP(to, code string, ttlMinutes int) error
}

// SMTPMailer sends through the configured SMTP relay.
type SMTPMailer struct {
	Cfg *config.MailConfig
}

func NewSMTPMailer(cfg *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{Cfg: cfg}
}

func (m *SMTPMailer) SendOTP(to, code string, ttlMinutes int) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Tu código de verificación")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Tu código de verificación es: %s\n\nCaduca en %d minutos. Si no has solicitado este código, ignora este mensaje.",
		code, ttlMinutes,
	))

	d := gomail.NewDialer(m.Cfg.Host, m.Cfg.Port, m.Cfg.Username, m.Cfg.Password)
	return d.DialAndSend(msg)
}

// LogMailer only logs the code. Used when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) SendOTP(to, code string, ttlMinutes int) error {
	logger.Log.Info("OTP mail (no SMTP configured)",
		zap.String("to", to), zap.String("code", code), zap.Int("ttl_minutes", ttlMinutes))
	return nil
}

// NewMailer picks the SMTP mailer when a host is configured, the log mailer
// otherwise.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.Mail.Host == "" {
		return LogMailer{}
	}
	return NewSMTPMailer(&cfg.Mail)
}
