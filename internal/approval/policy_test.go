package approval

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAmount(t *testing.T) {
	policies := DefaultPolicies()

	tests := []struct {
		amount string
		want   RiskTier
	}{
		{"0", RiskTierLow},
		{"0.50", RiskTierLow},
		{"1", RiskTierLow},
		{"1.01", RiskTierMedium},
		{"3", RiskTierMedium},
		{"3.50", RiskTierHigh},
		{"5", RiskTierHigh},
		{"5.01", RiskTierVeryHigh},
		{"7", RiskTierVeryHigh},
		{"7.01", RiskTierExtreme},
		{"9", RiskTierExtreme},
		{"1000000", RiskTierExtreme},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ClassifyAmount(policies, amount))
		})
	}
}

func TestDefaultPolicies(t *testing.T) {
	policies := DefaultPolicies()
	require.Len(t, policies, 5)

	// Tiers ascend and tile the amount axis without gaps.
	for i, p := range policies {
		assert.Equal(t, RiskTier(i), p.Tier)
		if i > 0 {
			assert.True(t, p.MinAmount.Equal(policies[i-1].MaxAmount),
				"tier %s lower bound must meet previous ceiling", p.Tier)
		}
	}

	// Only the top tier is unbounded and blocking.
	for _, p := range policies[:4] {
		assert.False(t, p.Unbounded)
		assert.False(t, p.BlockOnViolation)
	}
	extreme := policies[4]
	assert.True(t, extreme.Unbounded)
	assert.True(t, extreme.BlockOnViolation)
	assert.True(t, extreme.SanctionsScreening)
	assert.True(t, extreme.RiskScoring)
	assert.NotEmpty(t, extreme.BlockedCountries)
	assert.Empty(t, extreme.AllowedCountries)
}

func TestFactorEscalation(t *testing.T) {
	policies := DefaultPolicies()

	assert.False(t, policies[0].RequirePassword)
	assert.True(t, policies[1].RequirePassword)
	assert.True(t, policies[2].RequirePasskey)
	assert.True(t, policies[3].RequirePasskey)
	assert.True(t, policies[3].RequireOTP)
	assert.True(t, policies[4].RequireComplianceReview)
}
