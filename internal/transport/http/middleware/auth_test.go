package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"

	jwtinfra "github.com/go-api-vendor/internal/infrastructure/jwt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewEphemeralProvider()
	require.NoError(t, err)
	return p
}

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func serve(t *testing.T, p *jwtinfra.Provider, header string, next http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	Auth(p)(next).ServeHTTP(rr, req)
	return rr
}

func TestAuth_MissingHeader(t *testing.T) {
	rr := serve(t, newTestProvider(t), "", http.HandlerFunc(okHandler))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Authentication credentials were not provided."}`, rr.Body.String())
}

func TestAuth_UnknownScheme(t *testing.T) {
	rr := serve(t, newTestProvider(t), "Basic dXNlcjpwYXNz", http.HandlerFunc(okHandler))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_BadToken(t *testing.T) {
	rr := serve(t, newTestProvider(t), "Bearer not-a-real-token", http.HandlerFunc(okHandler))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid token."}`, rr.Body.String())
}

func TestAuth_ForeignKey(t *testing.T) {
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, &jwtinfra.Claims{UserID: "u1"}).SignedString(otherKey)
	require.NoError(t, err)

	rr := serve(t, newTestProvider(t), "Bearer "+signed, http.HandlerFunc(okHandler))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_ValidToken_InjectsClaims(t *testing.T) {
	p := newTestProvider(t)
	signed, err := p.Sign("u1", "sess1")
	require.NoError(t, err)

	for _, scheme := range []string{"Bearer ", "Token ", "bearer "} {
		var got *jwtinfra.Claims
		capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = ClaimsFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		rr := serve(t, p, scheme+signed, capture)

		assert.Equal(t, http.StatusOK, rr.Code, scheme)
		require.NotNil(t, got, scheme)
		assert.Equal(t, "u1", got.UserID)
		assert.Equal(t, "sess1", got.SessionID)
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("Token abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("Bearer    ")
	assert.False(t, ok)
	_, ok = bearerToken("abc")
	assert.False(t, ok)
}
