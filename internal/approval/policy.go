// Package approval implements the tiered transaction-approval engine:
// a risk classifier over transfer amounts, a policy-driven evaluator
// per risk tier, and an orchestrator that sequences the verification
// factors a transfer must clear before it may execute.
package approval

import (
	"github.com/shopspring/decimal"
)

// RiskTier classifies a transfer by amount. Tiers are totally ordered
// and partition the non-negative amount axis; amounts above the
// Extreme lower bound saturate into Extreme.
type RiskTier int

const (
	RiskTierLow RiskTier = iota
	RiskTierMedium
	RiskTierHigh
	RiskTierVeryHigh
	RiskTierExtreme
)

func (t RiskTier) String() string {
	switch t {
	case RiskTierLow:
		return "low"
	case RiskTierMedium:
		return "medium"
	case RiskTierHigh:
		return "high"
	case RiskTierVeryHigh:
		return "very_high"
	case RiskTierExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// Factor is a verification method gating transaction execution.
type Factor string

const (
	FactorPassword         Factor = "password"
	FactorPasskey          Factor = "passkey"
	FactorOTP              Factor = "otp"
	FactorComplianceReview Factor = "compliance_review"
)

// Policy is the immutable per-tier configuration. Loaded once at
// construction and never mutated afterwards.
type Policy struct {
	Tier        RiskTier
	Name        string
	Description string

	// MinAmount and MaxAmount bound the tier's slice of the amount
	// axis, both inclusive. Unbounded is true only for the Extreme
	// tier, which has no ceiling.
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	Unbounded bool

	// MaxDailyLimit caps the cumulative per-account total for a
	// wall-clock day. Zero means no daily cap.
	MaxDailyLimit decimal.Decimal

	// AllowedCountries is an allow list; BlockedCountries a deny list.
	// A tier uses one or the other, never both.
	AllowedCountries []string
	BlockedCountries []string

	RequirePassword           bool
	RequirePasskey            bool
	RequireOTP                bool
	RequireComplianceReview   bool
	RequireDeviceVerification bool

	// VelocityCheck limits transactions per trailing hour to
	// MaxPerHour; RecentRetention bounds how many recent transactions
	// are remembered per account (zero means untracked).
	VelocityCheck   bool
	MaxPerHour      int
	RecentRetention int

	// TimeRestricted limits evaluation to local hours in
	// [AllowedFromHour, AllowedToHour).
	TimeRestricted  bool
	AllowedFromHour int
	AllowedToHour   int

	// SanctionsScreening and RiskScoring are Extreme-tier gates.
	SanctionsScreening bool
	RiskScoring        bool

	// BlockOnViolation converts hard gate failures into blocking
	// verdicts with an explanation instead of policy-violation errors.
	// The Extreme tier explains why rather than throwing.
	BlockOnViolation bool
}

// baseAllowedCountries is the allow list shared by the non-extreme
// tiers.
var baseAllowedCountries = []string{
	"US", "CA", "GB", "DE", "FR", "NL", "CH", "AU", "NZ", "JP", "SG", "KR",
}

// sanctionedCountries is the deny list applied by the Extreme tier.
var sanctionedCountries = []string{"KP", "IR", "CU", "SY", "RU"}

// DefaultPolicies returns the five tier policies in ascending amount
// order. Amounts are USDC units.
func DefaultPolicies() []Policy {
	return []Policy{
		{
			Tier:             RiskTierLow,
			Name:             "low",
			Description:      "Small transfers auto-approved within daily limits",
			MinAmount:        decimal.Zero,
			MaxAmount:        decimal.NewFromInt(1),
			MaxDailyLimit:    decimal.NewFromInt(5),
			AllowedCountries: baseAllowedCountries,
		},
		{
			Tier:             RiskTierMedium,
			Name:             "medium",
			Description:      "Password confirmation required",
			MinAmount:        decimal.NewFromInt(1),
			MaxAmount:        decimal.NewFromInt(3),
			MaxDailyLimit:    decimal.NewFromInt(20),
			AllowedCountries: baseAllowedCountries,
			RequirePassword:  true,
			VelocityCheck:    true,
			MaxPerHour:       5,
			RecentRetention:  10,
		},
		{
			Tier:             RiskTierHigh,
			Name:             "high",
			Description:      "Passkey verification required",
			MinAmount:        decimal.NewFromInt(3),
			MaxAmount:        decimal.NewFromInt(5),
			MaxDailyLimit:    decimal.NewFromInt(50),
			AllowedCountries: baseAllowedCountries,
			RequirePasskey:   true,
			VelocityCheck:    true,
			MaxPerHour:       3,
			RecentRetention:  5,
		},
		{
			Tier:             RiskTierVeryHigh,
			Name:             "very_high",
			Description:      "Passkey plus emailed one-time code required",
			MinAmount:        decimal.NewFromInt(5),
			MaxAmount:        decimal.NewFromInt(7),
			MaxDailyLimit:    decimal.NewFromInt(100),
			AllowedCountries: baseAllowedCountries,
			RequirePasskey:   true,
			RequireOTP:       true,
			VelocityCheck:    true,
			MaxPerHour:       2,
			RecentRetention:  3,
			TimeRestricted:   true,
			AllowedFromHour:  6,
			AllowedToHour:    22,
		},
		{
			Tier:                      RiskTierExtreme,
			Name:                      "extreme",
			Description:               "Compliance review, sanctions screening and strict velocity and time gates",
			MinAmount:                 decimal.NewFromInt(7),
			MaxAmount:                 decimal.NewFromInt(9),
			Unbounded:                 true,
			BlockedCountries:          sanctionedCountries,
			RequireComplianceReview:   true,
			RequireDeviceVerification: true,
			VelocityCheck:             true,
			MaxPerHour:                1,
			RecentRetention:           2,
			TimeRestricted:            true,
			AllowedFromHour:           8,
			AllowedToHour:             18,
			SanctionsScreening:        true,
			RiskScoring:               true,
			BlockOnViolation:          true,
		},
	}
}

// ClassifyAmount maps a transfer amount to exactly one risk tier by
// ascending ceiling lookup. Pure and total for non-negative amounts;
// anything above the VeryHigh ceiling is Extreme.
func ClassifyAmount(policies []Policy, amount decimal.Decimal) RiskTier {
	for _, p := range policies {
		if !p.Unbounded && amount.LessThanOrEqual(p.MaxAmount) {
			return p.Tier
		}
	}
	return RiskTierExtreme
}
