package approval

import "fmt"

// VerdictKind is the evaluator's structural outcome. Hard policy
// violations are not verdicts; they surface as *PolicyViolation errors
// and are translated by the orchestrator.
type VerdictKind int

const (
	// VerdictApproved means every gate passed and per-account state
	// was updated.
	VerdictApproved VerdictKind = iota
	// VerdictRequiresFactor means one or more verification factors
	// are still outstanding; Missing lists them in the order the
	// caller should satisfy them.
	VerdictRequiresFactor
	// VerdictBlocked means the transfer must not proceed and retrying
	// with more proof will not help.
	VerdictBlocked
)

// Verdict is a tier evaluator's structured result.
type Verdict struct {
	Kind VerdictKind
	Tier RiskTier

	// AutoApproved is set when the tier required no verification
	// factors at all (Low tier).
	AutoApproved bool

	// Missing lists the factors still unsatisfied, ordered.
	Missing []Factor

	PasswordVerified bool
	PasskeyVerified  bool
	OTPVerified      bool

	// OTPIssued is set when this evaluation generated and stored a
	// fresh one-time code as a side effect. EmailSent reports whether
	// delivery of that code succeeded.
	OTPIssued bool
	EmailSent bool

	BlockReason string
	RiskScore   int
}

// PolicyViolation is a hard policy gate failure: daily limit exceeded,
// out-of-range amount, disallowed country, velocity or time-window
// violation, invalid OTP. It carries the offending values in Message
// and is converted to a blocked response at the orchestrator boundary.
type PolicyViolation struct {
	Tier    RiskTier
	Rule    string
	Message string
}

func (e *PolicyViolation) Error() string {
	return fmt.Sprintf("%s tier policy violation (%s): %s", e.Tier, e.Rule, e.Message)
}
