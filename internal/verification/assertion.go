package verification

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"

	"meridian-api/internal/db"
)

// ECDSAAssertionValidator validates assertions signed with the
// credential's stored P-256 public key. The signed message is
// sha256(challenge || clientData), signature in ASN.1 DER form.
type ECDSAAssertionValidator struct{}

func NewECDSAAssertionValidator() *ECDSAAssertionValidator {
	return &ECDSAAssertionValidator{}
}

func (v *ECDSAAssertionValidator) ValidateAssertion(ctx context.Context, credential db.PasskeyCredential, challenge string, assertion AssertionResponse) (int64, error) {
	if len(assertion.Signature) == 0 {
		return 0, errors.New("assertion carries no signature")
	}

	parsed, err := x509.ParsePKIXPublicKey(credential.PublicKey)
	if err != nil {
		return 0, fmt.Errorf("failed to parse credential public key: %w", err)
	}
	publicKey, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return 0, errors.New("credential public key is not ECDSA")
	}

	digest := sha256.Sum256(append([]byte(challenge), assertion.ClientData...))
	if !ecdsa.VerifyASN1(publicKey, digest[:], assertion.Signature) {
		return 0, errors.New("signature verification failed")
	}

	return credential.SignCount + 1, nil
}
