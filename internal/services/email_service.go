package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"meridian-api/internal/db"
	"meridian-api/internal/logger"
)

// EmailService sends transactional email through Resend.
type EmailService struct {
	client    *resend.Client
	logger    *zap.Logger
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) *EmailService {
	return &EmailService{
		client:    resend.NewClient(apiKey),
		logger:    logger.Log,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendOTPEmail delivers a one-time verification code.
func (s *EmailService) SendOTPEmail(ctx context.Context, toEmail, code string, expiry time.Duration) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	minutes := int(expiry.Minutes())

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{toEmail},
		Subject: "Your transfer verification code",
		Html: fmt.Sprintf(
			"<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes. If you did not request a transfer, contact support immediately.</p>",
			code, minutes),
		Text: fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, minutes),
		Headers: map[string]string{
			"X-Entity-Ref-ID": uuid.New().String(),
		},
		Tags: []resend.Tag{
			{Name: "category", Value: "otp"},
		},
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send OTP email",
			zap.Error(err),
			zap.String("to", toEmail))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("OTP email sent",
		zap.String("email_id", sent.Id),
		zap.String("to", toEmail))
	return nil
}

// SendTransferBlockedEmail notifies the user that a transfer was
// blocked by policy.
func (s *EmailService) SendTransferBlockedEmail(ctx context.Context, toEmail, amount, reason string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{toEmail},
		Subject: "Transfer blocked",
		Html: fmt.Sprintf(
			"<p>Your transfer of %s USDC was blocked.</p><p>Reason: %s</p><p>Contact support if you believe this is a mistake.</p>",
			amount, reason),
		Text: fmt.Sprintf("Your transfer of %s USDC was blocked. Reason: %s", amount, reason),
		Tags: []resend.Tag{
			{Name: "category", Value: "transfer_blocked"},
		},
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.logger.Error("failed to send transfer blocked email",
			zap.Error(err),
			zap.String("to", toEmail))
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// VaultOTPSender routes approval-engine OTP deliveries to the email of
// the vault's owner. It is the glue between the in-memory approval
// evaluators, which only know vault addresses, and the mail pipeline.
type VaultOTPSender struct {
	queries db.Querier
	emails  *EmailService
	logger  *zap.Logger
}

func NewVaultOTPSender(queries db.Querier, emails *EmailService) *VaultOTPSender {
	return &VaultOTPSender{
		queries: queries,
		emails:  emails,
		logger:  logger.Log,
	}
}

// SendOTP resolves the vault address to its owner and emails the code.
func (s *VaultOTPSender) SendOTP(ctx context.Context, account, code string, expiry time.Duration) error {
	vault, err := s.queries.GetVaultByAddress(ctx, account)
	if err != nil {
		return fmt.Errorf("failed to resolve vault %s: %w", account, err)
	}
	user, err := s.queries.GetUser(ctx, vault.UserID)
	if err != nil {
		return fmt.Errorf("failed to load vault owner: %w", err)
	}
	return s.emails.SendOTPEmail(ctx, user.Email, code, expiry)
}
