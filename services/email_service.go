package services

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

// EmailService sends the password-reset OTP over SMTP using the Email.*
// settings. Implements OTPMailer.
type EmailService struct {
	settings *SettingsService
}

func NewEmailService(settings *SettingsService) *EmailService {
	return &EmailService{settings: settings}
}

func (s *EmailService) SendOTP(to, otp string) error {
	cfg, err := s.settings.GetEmailSettings()
	if err != nil {
		return err
	}
	if cfg.SmtpServer == "" || cfg.FromEmail == "" {
		return fmt.Errorf("email settings not configured")
	}

	addr := fmt.Sprintf("%s:%d", cfg.SmtpServer, cfg.SmtpPort)
	auth := smtp.PlainAuth("", cfg.FromEmail, cfg.Password, cfg.SmtpServer)

	msg := []byte(
		"From: Restaurant System <" + cfg.FromEmail + ">\r\n" +
			"To: " + to + "\r\n" +
			"Subject: Password Reset OTP\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			"Your password reset code is: " + otp + "\r\n" +
			"This code expires in 10 minutes.\r\n" +
			"If you did not request this, ignore this email.\r\n")

	slog.Info("sending OTP email", "server", cfg.SmtpServer, "port", cfg.SmtpPort)
	if err := smtp.SendMail(addr, auth, cfg.FromEmail, []string{to}, msg); err != nil {
		slog.Error("send mail failed", "error", err)
		return err
	}
	return nil
}
