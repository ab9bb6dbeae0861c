package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue(domain.Principal{ID: "user-123", Email: "u@example.com", Roles: []string{"admin", "organizer"}}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, []string{"admin", "organizer"}, claims.Roles)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("secret-a")

	valid, err := issuer.Issue(domain.Principal{ID: "u1", Roles: []string{RoleOrganizer}}, time.Hour)
	require.NoError(t, err)
	expired, err := issuer.Issue(domain.Principal{ID: "u1"}, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		secret  string
		token   string
		wantID  string
		wantErr bool
	}{
		{name: "valid token", secret: "secret-a", token: valid, wantID: "u1"},
		{name: "wrong secret", secret: "secret-b", token: valid, wantErr: true},
		{name: "expired", secret: "secret-a", token: expired, wantErr: true},
		{name: "garbage", secret: "secret-a", token: "not-a-jwt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewJWTVerifier(tt.secret).Verify(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
			assert.Equal(t, []string{RoleOrganizer}, p.Roles)
		})
	}
}
