package approval

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"meridian-api/internal/logger"
)

const (
	otpLength = 6
	otpTTL    = 10 * time.Minute
)

// Evaluator applies one tier's policy to transfer requests. All five
// tiers share this implementation; the differences between them live
// entirely in the Policy value. Per-account history (daily totals,
// velocity windows, pending OTP challenges, compliance reviews) is
// held in memory for the process lifetime.
type Evaluator struct {
	policy     Policy
	store      *stateStore
	compliance ComplianceChecker
	sender     OTPSender
	logger     *zap.Logger

	// now is injectable for time-window and expiry tests.
	now func() time.Time
}

// NewEvaluator creates an evaluator for the given tier policy.
func NewEvaluator(policy Policy, compliance ComplianceChecker, sender OTPSender) *Evaluator {
	return &Evaluator{
		policy:     policy,
		store:      newStateStore(),
		compliance: compliance,
		sender:     sender,
		logger:     logger.Log,
		now:        time.Now,
	}
}

// Policy returns the tier policy this evaluator enforces.
func (e *Evaluator) Policy() Policy {
	return e.policy
}

// Evaluate runs the tier's checks in order against the account's
// history. Hard gate failures return a *PolicyViolation; everything
// else is a Verdict. On full success the per-account counters are
// updated before returning.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Verdict, error) {
	st := e.store.get(req.FromAddress)
	st.mu.Lock()
	defer st.mu.Unlock()

	now := e.now()
	st.resetIfNewDay(now)

	if err := e.checkAmountRange(req.Amount); err != nil {
		return nil, err
	}

	if v, err := e.checkDailyLimit(st, req.Amount); v != nil || err != nil {
		return v, err
	}

	if v, err := e.checkCountry(req.UserCountry); v != nil || err != nil {
		return v, err
	}

	if v, err := e.checkVelocity(st, now); v != nil || err != nil {
		return v, err
	}

	if v, err := e.checkTimeWindow(now); v != nil || err != nil {
		return v, err
	}

	if v, err := e.checkAddressRisk(ctx, req.ToAddress); v != nil || err != nil {
		return v, err
	}

	if e.policy.SanctionsScreening {
		passed, err := e.compliance.CheckSanctions(ctx, req.FromAddress, req.ToAddress, req.UserCountry)
		if err != nil || !passed {
			if err != nil {
				e.logger.Warn("sanctions screening unavailable, failing closed",
					zap.String("from_address", req.FromAddress), zap.Error(err))
			}
			return e.blocked("sanctions screening failed", 100), nil
		}
	}

	score := 0
	if e.policy.RiskScoring {
		score = e.riskScore(req)
		if score >= 90 {
			return e.blocked(fmt.Sprintf("risk score %d exceeds blocking threshold", score), score), nil
		}
	}

	v, err := e.checkFactors(ctx, st, req, now, score)
	if v != nil || err != nil {
		return v, err
	}

	st.record(req.Amount, now, e.policy.RecentRetention)

	autoApproved := !e.policy.RequirePassword && !e.policy.RequirePasskey &&
		!e.policy.RequireOTP && !e.policy.RequireComplianceReview

	e.logger.Info("transfer approved",
		zap.String("tier", e.policy.Tier.String()),
		zap.String("from_address", req.FromAddress),
		zap.String("amount", req.Amount.String()),
		zap.String("daily_total", st.dailyTotal.String()))

	return &Verdict{
		Kind:             VerdictApproved,
		Tier:             e.policy.Tier,
		AutoApproved:     autoApproved,
		PasswordVerified: req.PasswordVerified,
		PasskeyVerified:  req.PasskeyVerified,
		OTPVerified:      e.policy.RequireOTP,
		RiskScore:        score,
	}, nil
}

func (e *Evaluator) checkAmountRange(amount decimal.Decimal) error {
	if amount.LessThan(e.policy.MinAmount) ||
		(!e.policy.Unbounded && amount.GreaterThan(e.policy.MaxAmount)) {
		// Should never happen given correct classification; fail
		// loudly rather than silently reclassifying.
		return &PolicyViolation{
			Tier: e.policy.Tier,
			Rule: "amount_range",
			Message: fmt.Sprintf("amount %s outside %s tier range [%s, %s]",
				amount, e.policy.Tier, e.policy.MinAmount, e.maxAmountLabel()),
		}
	}
	return nil
}

func (e *Evaluator) checkDailyLimit(st *accountState, amount decimal.Decimal) (*Verdict, error) {
	if !e.policy.MaxDailyLimit.IsPositive() {
		return nil, nil
	}
	if st.dailyTotal.Add(amount).GreaterThan(e.policy.MaxDailyLimit) {
		msg := fmt.Sprintf("daily limit exceeded: current total %s plus %s is over the %s limit",
			st.dailyTotal, amount, e.policy.MaxDailyLimit)
		if e.policy.BlockOnViolation {
			return e.blocked(msg, 0), nil
		}
		return nil, &PolicyViolation{Tier: e.policy.Tier, Rule: "daily_limit", Message: msg}
	}
	return nil, nil
}

func (e *Evaluator) checkCountry(country string) (*Verdict, error) {
	if country == "" {
		return nil, nil
	}
	for _, blocked := range e.policy.BlockedCountries {
		if blocked == country {
			// Sanctioned-country membership is an immediate block
			// carrying the maximum risk score, not a violation.
			return e.blocked(fmt.Sprintf("transactions from sanctioned country %s are prohibited", country), 100), nil
		}
	}
	if len(e.policy.AllowedCountries) == 0 {
		return nil, nil
	}
	for _, allowed := range e.policy.AllowedCountries {
		if allowed == country {
			return nil, nil
		}
	}
	return nil, &PolicyViolation{
		Tier:    e.policy.Tier,
		Rule:    "country",
		Message: fmt.Sprintf("country %s is not allowed for %s tier transfers", country, e.policy.Tier),
	}
}

func (e *Evaluator) checkVelocity(st *accountState, now time.Time) (*Verdict, error) {
	if !e.policy.VelocityCheck {
		return nil, nil
	}
	n := st.countLastHour(now)
	if n >= e.policy.MaxPerHour {
		msg := fmt.Sprintf("velocity limit exceeded: %d transactions in the last hour (max %d)",
			n, e.policy.MaxPerHour)
		if e.policy.BlockOnViolation {
			return e.blocked(msg, 0), nil
		}
		return nil, &PolicyViolation{Tier: e.policy.Tier, Rule: "velocity", Message: msg}
	}
	return nil, nil
}

func (e *Evaluator) checkTimeWindow(now time.Time) (*Verdict, error) {
	if !e.policy.TimeRestricted {
		return nil, nil
	}
	h := now.Hour()
	if h >= e.policy.AllowedFromHour && h < e.policy.AllowedToHour {
		return nil, nil
	}
	msg := fmt.Sprintf("%s tier transfers are only allowed between %02d:00 and %02d:00",
		e.policy.Tier, e.policy.AllowedFromHour, e.policy.AllowedToHour)
	if e.policy.BlockOnViolation {
		return e.blocked(msg, 0), nil
	}
	return nil, &PolicyViolation{Tier: e.policy.Tier, Rule: "time_window", Message: msg}
}

func (e *Evaluator) checkAddressRisk(ctx context.Context, toAddress string) (*Verdict, error) {
	passed, err := e.compliance.CheckAddress(ctx, toAddress)
	if err != nil {
		// Fail closed: an unavailable screening provider is treated
		// as a failed screen.
		e.logger.Warn("address screening unavailable, failing closed",
			zap.String("to_address", toAddress), zap.Error(err))
		passed = false
	}
	if passed {
		return nil, nil
	}
	msg := "destination address failed risk screening"
	if e.policy.BlockOnViolation {
		return e.blocked(msg, 100), nil
	}
	return nil, &PolicyViolation{Tier: e.policy.Tier, Rule: "address_risk", Message: msg}
}

// checkFactors applies the tier's verification gates in escalation
// order. It returns a RequiresFactor verdict for the first unsatisfied
// factor; OTP issuance happens here as a side effect.
func (e *Evaluator) checkFactors(ctx context.Context, st *accountState, req Request, now time.Time, score int) (*Verdict, error) {
	if e.policy.RequirePassword && !req.PasswordVerified {
		return &Verdict{
			Kind:    VerdictRequiresFactor,
			Tier:    e.policy.Tier,
			Missing: []Factor{FactorPassword},
		}, nil
	}

	if e.policy.RequirePasskey && !req.PasskeyVerified {
		return &Verdict{
			Kind:             VerdictRequiresFactor,
			Tier:             e.policy.Tier,
			Missing:          []Factor{FactorPasskey},
			PasswordVerified: req.PasswordVerified,
		}, nil
	}

	if e.policy.RequireOTP {
		if req.OTPCode == "" {
			code, err := generateOTP()
			if err != nil {
				return nil, fmt.Errorf("failed to generate one-time code: %w", err)
			}
			st.pendingOTP = &otpChallenge{code: code, expiresAt: now.Add(otpTTL)}

			emailSent := false
			if e.sender != nil {
				if err := e.sender.SendOTP(ctx, req.FromAddress, code, otpTTL); err != nil {
					e.logger.Warn("failed to deliver one-time code",
						zap.String("from_address", req.FromAddress), zap.Error(err))
				} else {
					emailSent = true
				}
			}
			return &Verdict{
				Kind:            VerdictRequiresFactor,
				Tier:            e.policy.Tier,
				Missing:         []Factor{FactorOTP},
				PasskeyVerified: req.PasskeyVerified,
				OTPIssued:       true,
				EmailSent:       emailSent,
			}, nil
		}

		ch := st.pendingOTP
		if ch != nil && now.After(ch.expiresAt) {
			st.pendingOTP = nil
			ch = nil
		}
		if ch == nil || ch.code != req.OTPCode {
			return nil, &PolicyViolation{Tier: e.policy.Tier, Rule: "otp", Message: "Invalid OTP code"}
		}
		// Single use: consume on success.
		st.pendingOTP = nil
	}

	if e.policy.RequireComplianceReview || score >= 70 {
		approved := req.ManualApproved || (st.review != nil && st.review.approved)
		if !approved {
			return &Verdict{
				Kind:            VerdictRequiresFactor,
				Tier:            e.policy.Tier,
				Missing:         []Factor{FactorComplianceReview},
				PasskeyVerified: req.PasskeyVerified,
				RiskScore:       score,
			}, nil
		}
	}

	return nil, nil
}

// riskScore is the Extreme tier's additive score over amount
// magnitude, geography and device signals. 100 is the ceiling.
func (e *Evaluator) riskScore(req Request) int {
	score := 0

	switch {
	case req.Amount.GreaterThanOrEqual(decimal.NewFromInt(20)):
		score += 50
	case req.Amount.GreaterThanOrEqual(decimal.NewFromInt(10)):
		score += 40
	case req.Amount.GreaterThanOrEqual(decimal.NewFromInt(9)):
		score += 35
	default:
		score += 25
	}

	switch {
	case req.UserCountry == "":
		score += 10
	case isHighRiskCountry(req.UserCountry):
		score += 30
	}

	if e.policy.RequireDeviceVerification && req.DeviceFingerprint == "" {
		score += 15
	}
	if req.IPAddress == "" {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// highRiskCountries carries elevated geographic risk without being
// outright sanctioned.
var highRiskCountries = []string{"AF", "YE", "MM", "VE", "SO", "SS"}

func isHighRiskCountry(country string) bool {
	for _, c := range highRiskCountries {
		if c == country {
			return true
		}
	}
	return false
}

// RecordReview stores a compliance reviewer's decision for an account.
// The record persists until the next review replaces it.
func (e *Evaluator) RecordReview(account, reviewer string, approved bool) {
	st := e.store.get(account)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.review = &reviewRecord{approved: approved, reviewer: reviewer, reviewedAt: e.now()}
}

func (e *Evaluator) blocked(reason string, score int) *Verdict {
	e.logger.Warn("transfer blocked",
		zap.String("tier", e.policy.Tier.String()),
		zap.String("reason", reason),
		zap.Int("risk_score", score))
	return &Verdict{
		Kind:        VerdictBlocked,
		Tier:        e.policy.Tier,
		BlockReason: reason,
		RiskScore:   score,
	}
}

func (e *Evaluator) maxAmountLabel() string {
	if e.policy.Unbounded {
		return "unbounded"
	}
	return e.policy.MaxAmount.String()
}

// generateOTP returns a 6-digit numeric one-time code from crypto/rand.
func generateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
