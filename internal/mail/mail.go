// Package mail sends transactional email through Resend.
package mail

import (
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Sender delivers outbound mail. Implementations must be safe to call
// best-effort: callers log failures and move on.
type Sender interface {
	SendOTP(to, otp string) error
}

type resendSender struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

// NewResendSender creates a Sender backed by the Resend API.
func NewResendSender(apiKey, from string, logger *slog.Logger) Sender {
	return &resendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

// SendOTP emails a password-reset code.
func (s *resendSender) SendOTP(to, otp string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Your Password Reset Code",
		Html: fmt.Sprintf(`
			<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto; padding: 30px; background: #f9fafb; border-radius: 12px;">
				<h2 style="color: #146184; text-align: center; margin-bottom: 8px;">Password Reset</h2>
				<p style="color: #666; text-align: center; font-size: 14px;">Use the code below to reset your password. This code expires in 5 minutes.</p>
				<div style="text-align: center; margin: 24px 0;">
					<span style="display: inline-block; font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #146184; background: #fff; padding: 16px 32px; border-radius: 8px; border: 2px solid #146184;">%s</span>
				</div>
				<p style="color: #999; text-align: center; font-size: 12px;">If you did not request this, please ignore this email.</p>
			</div>`, otp),
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}

	s.logger.Info("otp email sent", "to", to, "email_id", sent.Id)
	return nil
}
