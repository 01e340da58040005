package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-api-vendor/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeyPair(t *testing.T) (privPath, pubPath string) {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath = filepath.Join(dir, "private.pem")
	pubPath = filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))
	return privPath, pubPath
}

func TestNewProvider_FromPEMFiles(t *testing.T) {
	privPath, pubPath := writeKeyPair(t)
	p, err := NewProvider(&config.Config{JWTPrivateKeyPath: privPath, JWTPublicKeyPath: pubPath})
	require.NoError(t, err)

	signed, err := p.Sign("u1", "s1")
	require.NoError(t, err)
	claims, err := p.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Nil(t, claims.ExpiresAt)
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTPrivateKeyPath: filepath.Join(t.TempDir(), "nope.pem")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read private key")
}

func TestVerify_ForeignKeyRejected(t *testing.T) {
	a, err := NewEphemeralProvider()
	require.NoError(t, err)
	b, err := NewEphemeralProvider()
	require.NoError(t, err)

	signed, err := a.Sign("u1", "s1")
	require.NoError(t, err)
	_, err = b.Verify(signed)
	assert.Error(t, err)
}

func TestVerify_HMACTokenRejected(t *testing.T) {
	p, err := NewEphemeralProvider()
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u1"})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = p.Verify(signed)
	assert.Error(t, err)
}

func TestVerify_MissingUserIDRejected(t *testing.T) {
	p, err := NewEphemeralProvider()
	require.NoError(t, err)

	signed, err := p.Sign("", "s1")
	require.NoError(t, err)
	_, err = p.Verify(signed)
	assert.Error(t, err)
}
