package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"eventregistration/internal/domain"
)

// capabilityTokenBytes is the entropy of a registration token (256 bits).
const capabilityTokenBytes = 32

type capabilityTokenIssuer struct {
	entropy io.Reader
}

// NewCapabilityTokenIssuer returns a TokenIssuer backed by crypto/rand.
func NewCapabilityTokenIssuer() domain.TokenIssuer {
	return &capabilityTokenIssuer{entropy: rand.Reader}
}

// Issue returns a base64url (unpadded) encoding of capabilityTokenBytes random bytes.
func (i *capabilityTokenIssuer) Issue() (string, error) {
	b := make([]byte, capabilityTokenBytes)
	if _, err := io.ReadFull(i.entropy, b); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEntropyUnavailable, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
