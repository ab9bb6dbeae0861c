package auth

import (
	"encoding/base64"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device not ready") }

func TestCapabilityTokenIssuer_Issue(t *testing.T) {
	issuer := NewCapabilityTokenIssuer()

	token, err := issuer.Issue()
	require.NoError(t, err)
	assert.Regexp(t, urlSafe, token)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, capabilityTokenBytes)
}

func TestCapabilityTokenIssuer_Unique(t *testing.T) {
	issuer := NewCapabilityTokenIssuer()
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		token, err := issuer.Issue()
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "duplicate token after %d issues", i)
		seen[token] = struct{}{}
	}
}

func TestCapabilityTokenIssuer_EntropyFailure(t *testing.T) {
	issuer := &capabilityTokenIssuer{entropy: failingReader{}}

	token, err := issuer.Issue()
	require.ErrorIs(t, err, domain.ErrEntropyUnavailable)
	assert.Empty(t, token)
}
