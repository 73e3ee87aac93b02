package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"meridian-api/internal/db"
	"meridian-api/internal/logger"
)

const otpExpiry = 10 * time.Minute

// OTPPurposeTransfer tags codes issued to confirm outbound transfers.
const OTPPurposeTransfer = "transfer"

// ErrInvalidOTP is returned for unknown, expired or already-used
// one-time codes.
var ErrInvalidOTP = errors.New("invalid or expired one-time code")

// CodeMailer delivers one-time codes to users.
type CodeMailer interface {
	SendOTPEmail(ctx context.Context, toEmail, code string, expiry time.Duration) error
}

// OTPService issues and verifies durable, single-use one-time codes.
type OTPService struct {
	queries db.Querier
	mailer  CodeMailer
	logger  *zap.Logger
}

func NewOTPService(queries db.Querier, mailer CodeMailer) *OTPService {
	return &OTPService{
		queries: queries,
		mailer:  mailer,
		logger:  logger.Log,
	}
}

// Issue generates a fresh 6-digit code for the user, invalidates any
// previous outstanding codes for the purpose, stores the new one and
// emails it.
func (s *OTPService) Issue(ctx context.Context, user db.User, purpose string) (db.OtpCode, error) {
	code, err := randomCode()
	if err != nil {
		return db.OtpCode{}, fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.queries.InvalidateOtpCodes(ctx, db.InvalidateOtpCodesParams{
		UserID:  user.ID,
		Purpose: purpose,
	}); err != nil {
		return db.OtpCode{}, fmt.Errorf("failed to invalidate previous codes: %w", err)
	}

	record, err := s.queries.CreateOtpCode(ctx, db.CreateOtpCodeParams{
		UserID:    user.ID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: pgtype.Timestamptz{Time: time.Now().Add(otpExpiry), Valid: true},
	})
	if err != nil {
		return db.OtpCode{}, fmt.Errorf("failed to store one-time code: %w", err)
	}

	if err := s.mailer.SendOTPEmail(ctx, user.Email, code, otpExpiry); err != nil {
		// The stored code remains valid; the user can request a resend.
		s.logger.Warn("failed to email one-time code",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return record, nil
}

// Verify checks a submitted code and consumes it on success.
func (s *OTPService) Verify(ctx context.Context, userID uuid.UUID, purpose, code string) error {
	record, err := s.queries.GetActiveOtpCode(ctx, db.GetActiveOtpCodeParams{
		UserID:  userID,
		Purpose: purpose,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to look up one-time code: %w", err)
	}
	if record.Code != code {
		return ErrInvalidOTP
	}
	if err := s.queries.MarkOtpCodeUsed(ctx, record.ID); err != nil {
		return fmt.Errorf("failed to consume one-time code: %w", err)
	}
	return nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
