package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saletracker-api/pkg/apierror"
)

func requestWithPrincipal(t *testing.T, payload string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	r.Header.Set(PrincipalHeader, base64.StdEncoding.EncodeToString([]byte(payload)))
	return r
}

func TestResolve_FullPrincipal(t *testing.T) {
	resolver := NewPrincipalResolver()
	r := requestWithPrincipal(t, `{
		"userId": "user123",
		"userDetails": "jane@example.com",
		"identityProvider": "github",
		"claims": [{"typ": "role", "val": "user"}]
	}`)

	identity, err := resolver.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "user123", identity.UserID)
	assert.Equal(t, "jane@example.com", identity.UserDetails)
	assert.Equal(t, "github", identity.Provider)
	require.Len(t, identity.Claims, 1)
	assert.Equal(t, "role", identity.Claims[0].Typ)
	assert.Equal(t, "user", identity.Claims[0].Val)
}

func TestResolve_DefaultsForOptionalFields(t *testing.T) {
	resolver := NewPrincipalResolver()
	r := requestWithPrincipal(t, `{"userId": "user123"}`)

	identity, err := resolver.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "Unknown User", identity.UserDetails)
	assert.Equal(t, "unknown", identity.Provider)
	assert.NotNil(t, identity.Claims)
	assert.Empty(t, identity.Claims)
}

func TestResolve_Failures(t *testing.T) {
	resolver := NewPrincipalResolver()

	tests := []struct {
		name    string
		request func() *http.Request
	}{
		{
			name: "missing header",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/sales", nil)
			},
		},
		{
			name: "not base64",
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
				r.Header.Set(PrincipalHeader, "%%%not-base64%%%")
				return r
			},
		},
		{
			name: "not JSON",
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
				r.Header.Set(PrincipalHeader, base64.StdEncoding.EncodeToString([]byte("not json")))
				return r
			},
		},
		{
			name: "missing userId",
			request: func() *http.Request {
				return requestWithPrincipal(t, `{"userDetails": "jane@example.com"}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := resolver.Resolve(tt.request())
			assert.Nil(t, identity)
			require.Error(t, err)

			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			assert.NotEmpty(t, apiErr.Detail)
		})
	}
}

func TestUserIDAndClaims(t *testing.T) {
	resolver := NewPrincipalResolver()
	r := requestWithPrincipal(t, `{"userId": "u42", "claims": [{"typ": "scope", "val": "sales"}]}`)

	userID, err := resolver.UserID(r)
	require.NoError(t, err)
	assert.Equal(t, "u42", userID)

	claims, err := resolver.UserClaims(r)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "scope", claims[0].Typ)
}

func TestIsAuthenticated(t *testing.T) {
	resolver := NewPrincipalResolver()

	assert.True(t, resolver.IsAuthenticated(requestWithPrincipal(t, `{"userId": "u1"}`)))
	assert.False(t, resolver.IsAuthenticated(httptest.NewRequest(http.MethodGet, "/api/sales", nil)))
}
