package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian-api/internal/logger"
)

func init() {
	logger.InitLogger()
}

// stubCompliance is a controllable ComplianceChecker.
type stubCompliance struct {
	addressPassed   bool
	sanctionsPassed bool
	err             error
}

func (s *stubCompliance) CheckAddress(ctx context.Context, address string) (bool, error) {
	return s.addressPassed, s.err
}

func (s *stubCompliance) CheckSanctions(ctx context.Context, fromAddress, toAddress, country string) (bool, error) {
	return s.sanctionsPassed, s.err
}

// captureSender records the last code it was asked to deliver.
type captureSender struct {
	account string
	code    string
	err     error
}

func (s *captureSender) SendOTP(ctx context.Context, account, code string, expiry time.Duration) error {
	s.account = account
	s.code = code
	return s.err
}

func passingCompliance() *stubCompliance {
	return &stubCompliance{addressPassed: true, sanctionsPassed: true}
}

// businessHours is a fixed weekday timestamp inside every tier's
// allowed window.
var businessHours = time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

func newTestEvaluator(t *testing.T, tier RiskTier, compliance ComplianceChecker, sender OTPSender) *Evaluator {
	t.Helper()
	for _, p := range DefaultPolicies() {
		if p.Tier == tier {
			e := NewEvaluator(p, compliance, sender)
			e.now = func() time.Time { return businessHours }
			return e
		}
	}
	t.Fatalf("no policy for tier %v", tier)
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEvaluatorLowTierAutoApproves(t *testing.T) {
	e := newTestEvaluator(t, RiskTierLow, passingCompliance(), nil)

	v, err := e.Evaluate(context.Background(), Request{
		Amount:      dec("0.50"),
		FromAddress: "0xabc",
		ToAddress:   "0xdef",
		UserCountry: "US",
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictApproved, v.Kind)
	assert.True(t, v.AutoApproved)
}

func TestEvaluatorDailyLimit(t *testing.T) {
	e := newTestEvaluator(t, RiskTierLow, passingCompliance(), nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		v, err := e.Evaluate(ctx, Request{
			Amount:      dec("1"),
			FromAddress: "0xabc",
			ToAddress:   "0xdef",
			UserCountry: "US",
		})
		require.NoError(t, err)
		assert.Equal(t, VerdictApproved, v.Kind)
	}

	// The sixth dollar breaches the 5 USDC daily cap.
	_, err := e.Evaluate(ctx, Request{
		Amount:      dec("1"),
		FromAddress: "0xabc",
		ToAddress:   "0xdef",
		UserCountry: "US",
	})
	var violation *PolicyViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "daily_limit", violation.Rule)
	assert.Contains(t, violation.Message, "daily limit exceeded")
	assert.Contains(t, violation.Message, "current total 5")
}

func TestEvaluatorDailyLimitResetsNextDay(t *testing.T) {
	e := newTestEvaluator(t, RiskTierLow, passingCompliance(), nil)
	ctx := context.Background()
	req := Request{Amount: dec("1"), FromAddress: "0xabc", ToAddress: "0xdef", UserCountry: "US"}

	for i := 0; i < 5; i++ {
		v, err := e.Evaluate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, VerdictApproved, v.Kind)
	}

	_, err := e.Evaluate(ctx, req)
	var violation *PolicyViolation
	require.ErrorAs(t, err, &violation)

	// Counters are lazily reset on the first evaluation of a new day.
	e.now = func() time.Time { return businessHours.Add(24 * time.Hour) }
	v, err := e.Evaluate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, VerdictApproved, v.Kind)
}

func TestEvaluatorAmountRangeViolation(t *testing.T) {
	e := newTestEvaluator(t, RiskTierMedium, passingCompliance(), nil)

	_, err := e.Evaluate(context.Background(), Request{
		Amount:      dec("50"),
		FromAddress: "0xabc",
		ToAddress:   "0xdef",
		UserCountry: "US",
	})
	var violation *PolicyViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "amount_range", violation.Rule)
}

func TestEvaluatorCountryAllowList(t *testing.T) {
	e := newTestEvaluator(t, RiskTierMedium, passingCompliance(), nil)

	_, err := e.Evaluate(context.Background(), Request{
		Amount:           dec("2"),
		FromAddress:      "0xabc",
		ToAddress:        "0xdef",
		UserCountry:      "BR",
		PasswordVerified: true,
	})
	var violation *PolicyViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "country", violation.Rule)
}

func TestEvaluatorPasswordGate(t *testing.T) {
	e := newTestEvaluator(t, RiskTierMedium, passingCompliance(), nil)
	ctx := context.Background()
	req := Request{Amount: dec("2"), FromAddress: "0xabc", ToAddress: "0xdef", UserCountry: "US"}

	v, err := e.Evaluate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, VerdictRequiresFactor, v.Kind)
	assert.Equal(t, []Factor{FactorPassword}, v.Missing)

	req.PasswordVerified = true
	v, err = e.Evaluate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, VerdictApproved, v.Kind)
	assert.False(t, v.AutoApproved)
	assert.True(t, v.PasswordVerified)
}

func TestEvaluatorVelocityLimit(t *testing.T) {
	e := newTestEvaluator(t, RiskTierHigh, passingCompliance(), nil)
	ctx := context.Background()
	req := Request{
		Amount:          dec("4"),
		FromAddress:     "0xabc",
		ToAddress:       "0xdef",
		UserCountry:     "US",
		PasskeyVerified: true,
	}

	for i := 0; i < 3; i++ {
		v, err := e.Evaluate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, VerdictApproved, v.Kind)
	}

	_, err := e.Evaluate(ctx, req)
	var violation *PolicyViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "velocity", violation.Rule)
	assert.Contains(t, violation.Message, "3 transactions in the last hour (max 3)")

	// The window slides: an hour later the same account passes again.
	e.now = func() time.Time { return businessHours.Add(61 * time.Minute) }
	v, err := e.Evaluate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, VerdictApproved, v.Kind)
}

func TestEvaluatorOTPFlow(t *testing.T) {
	sender := &captureSender{}
	e := newTestEvaluator(t, RiskTierVeryHigh, passingCompliance(), sender)
	ctx := context.Background()
	req := Request{
		Amount:          dec("6"),
		FromAddress:     "0xabc",
		ToAddress:       "0xdef",
		UserCountry:     "US",
		PasskeyVerified: true,
	}

	// First attempt issues a code and emails it.
	v, err := e.Evaluate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, VerdictRequiresFactor, v.Kind)
	assert.Equal(t, []Factor{FactorOTP}, v.Missing)
	assert.True(t, v.OTPIssued)
	assert.True(t, v.EmailSent)
	require.Len(t, sender.code, 6)
	assert.Equal(t, "0xabc", sender.account)

	// Wrong code is rejected.
	bad := req
	bad.OTPCode = "000000"
	if bad.OTPCode == sender.code {
		bad.OTPCode = "000001"
	}
	_, err = e.Evaluate(ctx, bad)
	var violation *PolicyViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "otp", violation.Rule)
	assert.Equal(t, "Invalid OTP code", violation.Message)

	// Correct code approves.
	req.OTPCode = sender.code
	v, err = e.Evaluate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, VerdictApproved, v.Kind)

	// Codes are single use: the next attempt needs a fresh one. The
	// second evaluation also commits a transaction, so the velocity
	// gate (2 per hour at this tier) still has room.
	_, err = e.Evaluate(ctx, req)
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "otp", violation.Rule)
}

func TestEvaluatorOTPExpiry(t *testing.T) {
	sender := &captureSender{}
	e := newTestEvaluator(t, RiskTierVeryHigh, passingCompliance(), sender)
	ctx := context.Background()
	req := Request{
		Amount:          dec("6"),
		FromAddress:     "0xabc",
		ToAddress:       "0xdef",
		UserCountry:     "US",
		PasskeyVerified: true,
	}

	_, err := e.Evaluate(ctx, req)
	require.NoError(t, err)

	e.now = func() time.Time { return businessHours.Add(11 * time.Minute) }
	req.OTPCode = sender.code
	_, err = e.Evaluate(ctx, req)
	var violation *PolicyViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "otp", violation.Rule)
}

func TestEvaluatorTimeWindows(t *testing.T) {
	// VeryHigh throws a violation outside 06:00-22:00.
	e := newTestEvaluator(t, RiskTierVeryHigh, passingCompliance(), &captureSender{})
	e.now = func() time.Time { return time.Date(2026, 3, 16, 23, 0, 0, 0, time.UTC) }

	_, err := e.Evaluate(context.Background(), Request{
		Amount:          dec("6"),
		FromAddress:     "0xabc",
		ToAddress:       "0xdef",
		UserCountry:     "US",
		PasskeyVerified: true,
	})
	var violation *PolicyViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "time_window", violation.Rule)

	// Extreme explains instead of throwing outside 08:00-18:00.
	ex := newTestEvaluator(t, RiskTierExtreme, passingCompliance(), nil)
	ex.now = func() time.Time { return time.Date(2026, 3, 16, 19, 0, 0, 0, time.UTC) }

	v, err := ex.Evaluate(context.Background(), Request{
		Amount:      dec("8"),
		FromAddress: "0xabc",
		ToAddress:   "0xdef",
		UserCountry: "US",
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictBlocked, v.Kind)
	assert.Contains(t, v.BlockReason, "between 08:00 and 18:00")
}

func TestEvaluatorSanctionedCountryBlocks(t *testing.T) {
	e := newTestEvaluator(t, RiskTierExtreme, passingCompliance(), nil)

	v, err := e.Evaluate(context.Background(), Request{
		Amount:      dec("8"),
		FromAddress: "0xabc",
		ToAddress:   "0xdef",
		UserCountry: "KP",
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictBlocked, v.Kind)
	assert.Equal(t, 100, v.RiskScore)
	assert.Contains(t, v.BlockReason, "sanctioned country KP")
}

func TestEvaluatorScreeningUnavailableFailsClosed(t *testing.T) {
	compliance := &stubCompliance{err: errors.New("provider timeout")}
	e := newTestEvaluator(t, RiskTierExtreme, compliance, nil)

	v, err := e.Evaluate(context.Background(), Request{
		Amount:            dec("8"),
		FromAddress:       "0xabc",
		ToAddress:         "0xdef",
		UserCountry:       "US",
		DeviceFingerprint: "fp",
		IPAddress:         "1.2.3.4",
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictBlocked, v.Kind)
	assert.Equal(t, "destination address failed risk screening", v.BlockReason)
}

func TestEvaluatorSanctionsHitBlocks(t *testing.T) {
	compliance := &stubCompliance{addressPassed: true, sanctionsPassed: false}
	e := newTestEvaluator(t, RiskTierExtreme, compliance, nil)

	v, err := e.Evaluate(context.Background(), Request{
		Amount:            dec("8"),
		FromAddress:       "0xabc",
		ToAddress:         "0xdef",
		UserCountry:       "US",
		DeviceFingerprint: "fp",
		IPAddress:         "1.2.3.4",
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictBlocked, v.Kind)
	assert.Equal(t, "sanctions screening failed", v.BlockReason)
	assert.Equal(t, 100, v.RiskScore)
}

func TestEvaluatorRiskScoreBlocks(t *testing.T) {
	e := newTestEvaluator(t, RiskTierExtreme, passingCompliance(), nil)

	// Large amount from a high risk country with no device fingerprint
	// lands at 95, over the blocking threshold.
	v, err := e.Evaluate(context.Background(), Request{
		Amount:      dec("25"),
		FromAddress: "0xabc",
		ToAddress:   "0xdef",
		UserCountry: "AF",
		IPAddress:   "1.2.3.4",
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictBlocked, v.Kind)
	assert.Equal(t, 95, v.RiskScore)
	assert.Contains(t, v.BlockReason, "risk score 95")
}

func TestEvaluatorComplianceReviewGate(t *testing.T) {
	e := newTestEvaluator(t, RiskTierExtreme, passingCompliance(), nil)
	ctx := context.Background()
	req := Request{
		Amount:            dec("8"),
		FromAddress:       "0xabc",
		ToAddress:         "0xdef",
		UserCountry:       "US",
		DeviceFingerprint: "fp",
		IPAddress:         "1.2.3.4",
	}

	v, err := e.Evaluate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, VerdictRequiresFactor, v.Kind)
	assert.Equal(t, []Factor{FactorComplianceReview}, v.Missing)

	e.RecordReview("0xabc", "reviewer@example.com", true)
	v, err = e.Evaluate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, VerdictApproved, v.Kind)

	// A single committed transfer uses up the one-per-hour allowance.
	v, err = e.Evaluate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, VerdictBlocked, v.Kind)
	assert.Contains(t, v.BlockReason, "velocity limit exceeded")
}

func TestEvaluatorRejectedReviewDoesNotApprove(t *testing.T) {
	e := newTestEvaluator(t, RiskTierExtreme, passingCompliance(), nil)
	e.RecordReview("0xabc", "reviewer@example.com", false)

	v, err := e.Evaluate(context.Background(), Request{
		Amount:            dec("8"),
		FromAddress:       "0xabc",
		ToAddress:         "0xdef",
		UserCountry:       "US",
		DeviceFingerprint: "fp",
		IPAddress:         "1.2.3.4",
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictRequiresFactor, v.Kind)
	assert.Equal(t, []Factor{FactorComplianceReview}, v.Missing)
}

func TestEvaluatorPerAccountIsolation(t *testing.T) {
	e := newTestEvaluator(t, RiskTierLow, passingCompliance(), nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		v, err := e.Evaluate(ctx, Request{
			Amount: dec("1"), FromAddress: "0xaaa", ToAddress: "0xdef", UserCountry: "US",
		})
		require.NoError(t, err)
		assert.Equal(t, VerdictApproved, v.Kind)
	}

	_, err := e.Evaluate(ctx, Request{
		Amount: dec("1"), FromAddress: "0xaaa", ToAddress: "0xdef", UserCountry: "US",
	})
	var violation *PolicyViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "daily_limit", violation.Rule)

	// A different account has its own daily counter.
	v, err := e.Evaluate(ctx, Request{
		Amount: dec("1"), FromAddress: "0xbbb", ToAddress: "0xdef", UserCountry: "US",
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictApproved, v.Kind)
}
