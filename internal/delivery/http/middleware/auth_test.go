package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier accepts exactly one token.
type fakeTokenVerifier struct {
	token     string
	principal *domain.Principal
}

func (f *fakeTokenVerifier) Verify(token string) (*domain.Principal, error) {
	if token != f.token {
		return nil, errors.New("invalid or expired token")
	}
	return f.principal, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeErrorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error.Code
}

func TestRequireAuth(t *testing.T) {
	verifier := &fakeTokenVerifier{
		token:     "admin-token",
		principal: &domain.Principal{ID: "admin-1", Roles: []string{"organizer"}},
	}

	tests := []struct {
		name        string
		header      string
		wantID      string
		wantMessage string
	}{
		{name: "bearer token", header: "Bearer admin-token", wantID: "admin-1"},
		{name: "scheme is case-insensitive", header: "bearer admin-token", wantID: "admin-1"},
		{name: "surrounding spaces trimmed", header: "Bearer   admin-token ", wantID: "admin-1"},
		{name: "no header", wantMessage: "missing authorization header"},
		{name: "basic scheme", header: "Basic YWRhOnB3", wantMessage: "invalid authorization format"},
		{name: "scheme only", header: "Bearer", wantMessage: "invalid authorization format"},
		{name: "blank token", header: "Bearer  ", wantMessage: "missing token"},
		{name: "unknown token", header: "Bearer forged", wantMessage: "invalid or expired token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *domain.Principal
			handler := RequireAuth(verifier, discardLogger())(func(w http.ResponseWriter, r *http.Request) {
				got, _ = PrincipalFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodGet, "/admin/registrations/abc", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			if tt.wantID != "" {
				require.Equal(t, http.StatusNoContent, rr.Code)
				require.NotNil(t, got)
				assert.Equal(t, tt.wantID, got.ID)
				return
			}
			require.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Nil(t, got)
			assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Bearer")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
			assert.Equal(t, tt.wantMessage, envelope.Error.Message)
		})
	}
}

type fakeCapabilities map[string]bool

func (f fakeCapabilities) HasCapability(_ context.Context, p *domain.Principal, capability string) bool {
	return f[p.ID+"|"+capability]
}

func TestRequireCapability(t *testing.T) {
	checker := fakeCapabilities{"admin-1|" + domain.CapabilityManageRegistrations: true}

	tests := []struct {
		name       string
		principal  *domain.Principal
		wantStatus int
		wantCode   string
	}{
		{name: "principal with capability", principal: &domain.Principal{ID: "admin-1"}, wantStatus: http.StatusOK},
		{name: "principal without capability", principal: &domain.Principal{ID: "user-2"}, wantStatus: http.StatusForbidden, wantCode: helpers.ErrCodeForbidden},
		{name: "no principal", wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireCapability(checker, domain.CapabilityManageRegistrations, discardLogger())(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodPost, "http://test/admin/purge", nil)
			if tt.principal != nil {
				req = req.WithContext(SetPrincipal(req.Context(), tt.principal))
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeErrorCode(t, rr))
			}
		})
	}
}
