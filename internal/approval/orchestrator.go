package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"meridian-api/internal/logger"
)

// Response is the uniform, tier-agnostic decision returned to callers.
// Invariants: Blocked implies !Approved; AutoApproved implies Approved
// and every requirement flag false.
type Response struct {
	Approved       bool   `json:"approved"`
	RiskLevel      string `json:"risk_level"`
	RequiresAction bool   `json:"requires_action"`
	ActionRequired string `json:"action_required,omitempty"`
	AutoApproved   bool   `json:"auto_approved"`

	RequiresPasskey          bool `json:"requires_passkey"`
	RequiresPassword         bool `json:"requires_password"`
	RequiresOTP              bool `json:"requires_otp"`
	RequiresBiometric        bool `json:"requires_biometric"`
	RequiresManualApproval   bool `json:"requires_manual_approval"`
	RequiresComplianceReview bool `json:"requires_compliance_review"`

	Blocked     bool     `json:"blocked"`
	BlockReason string   `json:"block_reason,omitempty"`
	RiskScore   *int     `json:"risk_score,omitempty"`
	NextSteps   []string `json:"next_steps,omitempty"`
}

// TierInfo is read-only tier metadata for display purposes.
type TierInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MaxAmount    string   `json:"max_amount"`
	Requirements []string `json:"requirements"`
}

// Service is the approval orchestrator: the single entry point
// external callers use. It classifies a transfer, dispatches to the
// matching tier evaluator and normalizes the tier verdict into the
// uniform Response. All mutation happens inside the evaluators.
type Service struct {
	policies   []Policy
	evaluators map[RiskTier]*Evaluator
	logger     *zap.Logger
}

// NewService builds the orchestrator with the default tier policies.
func NewService(compliance ComplianceChecker, sender OTPSender) *Service {
	return NewServiceWithPolicies(DefaultPolicies(), compliance, sender)
}

// NewServiceWithPolicies builds the orchestrator from an explicit,
// ascending-ordered policy set.
func NewServiceWithPolicies(policies []Policy, compliance ComplianceChecker, sender OTPSender) *Service {
	evaluators := make(map[RiskTier]*Evaluator, len(policies))
	for _, p := range policies {
		evaluators[p.Tier] = NewEvaluator(p, compliance, sender)
	}
	return &Service{
		policies:   policies,
		evaluators: evaluators,
		logger:     logger.Log,
	}
}

// Classify maps an amount to its risk tier.
func (s *Service) Classify(amount decimal.Decimal) RiskTier {
	return ClassifyAmount(s.policies, amount)
}

// ProcessApproval classifies the request, runs the matching tier
// evaluator and maps its verdict to the uniform response. Policy
// violations are translated into blocked decisions here and never
// propagated raw to the caller.
func (s *Service) ProcessApproval(ctx context.Context, req Request) Response {
	tier := s.Classify(req.Amount)
	verdict, err := s.evaluators[tier].Evaluate(ctx, req)
	if err != nil {
		var violation *PolicyViolation
		if errors.As(err, &violation) {
			return Response{
				Approved:    false,
				RiskLevel:   tier.String(),
				Blocked:     true,
				BlockReason: violation.Message,
			}
		}
		s.logger.Error("approval evaluation failed",
			zap.String("tier", tier.String()), zap.Error(err))
		return Response{
			Approved:    false,
			RiskLevel:   tier.String(),
			Blocked:     true,
			BlockReason: "approval could not be completed",
		}
	}
	return s.mapVerdict(tier, verdict)
}

func (s *Service) mapVerdict(tier RiskTier, v *Verdict) Response {
	resp := Response{
		RiskLevel: tier.String(),
	}
	if v.RiskScore > 0 {
		score := v.RiskScore
		resp.RiskScore = &score
	}

	switch v.Kind {
	case VerdictBlocked:
		resp.Blocked = true
		resp.BlockReason = v.BlockReason

	case VerdictApproved:
		resp.Approved = true
		resp.AutoApproved = v.AutoApproved

	case VerdictRequiresFactor:
		resp.RequiresAction = true
		for _, f := range v.Missing {
			switch f {
			case FactorPassword:
				resp.RequiresPassword = true
			case FactorPasskey:
				resp.RequiresPasskey = true
				resp.RequiresBiometric = true
			case FactorOTP:
				resp.RequiresOTP = true
			case FactorComplianceReview:
				resp.RequiresComplianceReview = true
				resp.RequiresManualApproval = true
			}
		}
		if len(v.Missing) > 0 {
			resp.ActionRequired = actionFor(v.Missing[0], v)
			resp.NextSteps = nextStepsFor(v.Missing[0], v)
		}
	}
	return resp
}

func actionFor(f Factor, v *Verdict) string {
	switch f {
	case FactorPassword:
		return "Confirm this transfer with your account password"
	case FactorPasskey:
		return "Confirm this transfer with your passkey"
	case FactorOTP:
		if v.OTPIssued {
			return "Enter the one-time code we emailed you"
		}
		return "Enter your one-time code"
	case FactorComplianceReview:
		return "This transfer is pending compliance review"
	default:
		return ""
	}
}

func nextStepsFor(f Factor, v *Verdict) []string {
	switch f {
	case FactorPassword:
		return []string{
			"Re-enter your account password",
			"Resubmit the transfer with password verification",
		}
	case FactorPasskey:
		return []string{
			"Complete passkey verification on your device",
			"Resubmit the transfer with passkey verification",
		}
	case FactorOTP:
		steps := []string{}
		if v.OTPIssued {
			steps = append(steps, "Check your email for a 6-digit code")
		}
		return append(steps,
			"Enter the one-time code",
			"Resubmit the transfer with the code")
	case FactorComplianceReview:
		return []string{
			"A compliance reviewer must approve this transfer",
			"You will be notified once the review completes",
		}
	default:
		return nil
	}
}

// DescribeTier returns display metadata for a tier. Table lookup only,
// no business logic.
func (s *Service) DescribeTier(tier RiskTier) (TierInfo, error) {
	for _, p := range s.policies {
		if p.Tier != tier {
			continue
		}
		maxAmount := "unlimited"
		if !p.Unbounded {
			maxAmount = p.MaxAmount.String()
		}
		return TierInfo{
			Name:         p.Name,
			Description:  p.Description,
			MaxAmount:    maxAmount,
			Requirements: requirementsFor(p),
		}, nil
	}
	return TierInfo{}, fmt.Errorf("unknown risk tier: %d", tier)
}

// DescribeTiers returns display metadata for every tier in ascending
// order.
func (s *Service) DescribeTiers() []TierInfo {
	infos := make([]TierInfo, 0, len(s.policies))
	for _, p := range s.policies {
		info, _ := s.DescribeTier(p.Tier)
		infos = append(infos, info)
	}
	return infos
}

func requirementsFor(p Policy) []string {
	var reqs []string
	if p.RequirePassword {
		reqs = append(reqs, "password")
	}
	if p.RequirePasskey {
		reqs = append(reqs, "passkey")
	}
	if p.RequireOTP {
		reqs = append(reqs, "email one-time code")
	}
	if p.RequireComplianceReview {
		reqs = append(reqs, "compliance review")
	}
	if len(reqs) == 0 {
		reqs = []string{"none"}
	}
	return reqs
}

// SubmitComplianceReview records a reviewer decision for an account on
// the Extreme tier. This is the administrative counterpart of the
// compliance-review factor gate.
func (s *Service) SubmitComplianceReview(account, reviewer string, approved bool) {
	s.evaluators[RiskTierExtreme].RecordReview(account, reviewer, approved)
	s.logger.Info("compliance review recorded",
		zap.String("account", account),
		zap.String("reviewer", reviewer),
		zap.Bool("approved", approved))
}

// ParseTier converts a tier name to its RiskTier value.
func ParseTier(name string) (RiskTier, error) {
	switch name {
	case "low":
		return RiskTierLow, nil
	case "medium":
		return RiskTierMedium, nil
	case "high":
		return RiskTierHigh, nil
	case "very_high":
		return RiskTierVeryHigh, nil
	case "extreme":
		return RiskTierExtreme, nil
	default:
		return 0, fmt.Errorf("unknown risk tier: %q", name)
	}
}
