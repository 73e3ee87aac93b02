package approval

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// GeoPoint is optional structured geolocation supplied by the caller.
type GeoPoint struct {
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Request is the caller-supplied transfer intent plus whatever proof
// has already been collected for this attempt. Immutable per call.
type Request struct {
	Amount      decimal.Decimal `json:"amount"`
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`

	UserCountry       string    `json:"user_country,omitempty"`
	DeviceFingerprint string    `json:"device_fingerprint,omitempty"`
	IPAddress         string    `json:"ip_address,omitempty"`
	UserLocation      *GeoPoint `json:"user_location,omitempty"`

	// Proof flags: evidence the caller has already collected.
	PasswordVerified bool   `json:"password_verified"`
	PasskeyVerified  bool   `json:"passkey_verified"`
	OTPCode          string `json:"otp_code,omitempty"`
	ManualApproved   bool   `json:"manual_approved"`
}

// ComplianceChecker screens addresses and counterparties. Provider
// errors are treated as not-passed (fail closed).
type ComplianceChecker interface {
	CheckAddress(ctx context.Context, address string) (bool, error)
	CheckSanctions(ctx context.Context, fromAddress, toAddress, country string) (bool, error)
}

// OTPSender delivers a freshly issued one-time code to the account
// owner. Delivery failure does not invalidate the pending challenge.
type OTPSender interface {
	SendOTP(ctx context.Context, account, code string, expiry time.Duration) error
}
