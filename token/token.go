// Package token verifies chatguard access tokens.
//
// Access tokens are EdDSA-signed JWTs minted by the chat backend's auth
// layer. This package only verifies: it checks the signature against a
// configured public key, validates the registered claims with an injectable
// clock, and exposes the role claim for the admin fallback path. Tokens are
// never minted here.
package token

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/chatguard/authz"
	apperrors "github.com/louisbranch/chatguard/internal/platform/errors"
)

// Environment variable names for access token verification.
const (
	EnvIssuer    = "CHATGUARD_TOKEN_ISSUER"
	EnvAudience  = "CHATGUARD_TOKEN_AUDIENCE"
	EnvPublicKey = "CHATGUARD_TOKEN_PUBLIC_KEY"
)

// accessTokenEnv holds raw env values before post-parse validation.
type accessTokenEnv struct {
	Issuer    string `env:"CHATGUARD_TOKEN_ISSUER"`
	Audience  string `env:"CHATGUARD_TOKEN_AUDIENCE"`
	PublicKey string `env:"CHATGUARD_TOKEN_PUBLIC_KEY"`
}

// Config defines how access tokens are verified.
type Config struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// AccessClaims captures validated access token claims.
type AccessClaims struct {
	Issuer    string
	Audience  []string
	Subject   string
	Role      authz.Role
	ExpiresAt time.Time
	NotBefore time.Time
	IssuedAt  time.Time
	JWTID     string
}

// Claims returns the authorization view of the token: only the assertions
// policy evaluation consumes. An unrecognized role claim yields the zero
// value, which asserts nothing.
func (c AccessClaims) Claims() authz.Claims {
	return authz.Claims{Role: c.Role}
}

// accessClaims is the internal claims type used for JWT parsing.
type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// LoadConfigFromEnv reads access token verification configuration.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw accessTokenEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse access token env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return Config{}, fmt.Errorf("%s is required", EnvIssuer)
	}
	if audience == "" {
		return Config{}, fmt.Errorf("%s is required", EnvAudience)
	}
	if publicKey == "" {
		return Config{}, fmt.Errorf("%s is required", EnvPublicKey)
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return Config{}, fmt.Errorf("decode access token public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return Config{}, fmt.Errorf("access token public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return Config{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// VerifyAccess verifies an access token and returns its validated claims.
//
// The role claim is normalized to the canonical label set; values outside it
// come back as RoleUnspecified rather than failing verification, so policies
// downstream deny instead of the transport erroring.
func VerifyAccess(token string, cfg Config) (AccessClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return AccessClaims{}, apperrors.New(apperrors.CodeAccessTokenInvalid, "access token is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return AccessClaims{}, errors.New("access token verifier is not configured")
	}

	var parsed accessClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return AccessClaims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return AccessClaims{}, apperrors.WithMetadata(
			apperrors.CodeAccessTokenMismatch,
			"access token issuer mismatch",
			map[string]string{"Field": "issuer"},
		)
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return AccessClaims{}, apperrors.WithMetadata(
			apperrors.CodeAccessTokenMismatch,
			"access token audience mismatch",
			map[string]string{"Field": "audience"},
		)
	}

	if parsed.ID == "" {
		return AccessClaims{}, apperrors.New(apperrors.CodeAccessTokenInvalid, "access token jti is required")
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return AccessClaims{}, apperrors.New(apperrors.CodeAccessTokenInvalid, "access token sub is required")
	}
	if parsed.ExpiresAt == nil {
		return AccessClaims{}, apperrors.New(apperrors.CodeAccessTokenInvalid, "access token exp is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return AccessClaims{}, apperrors.New(apperrors.CodeAccessTokenExpired, "access token is expired")
	}
	if parsed.NotBefore != nil {
		nbf := parsed.NotBefore.Time.UTC()
		if now.Before(nbf) {
			return AccessClaims{}, apperrors.New(apperrors.CodeAccessTokenInvalid, "access token not active yet")
		}
	}

	role, _ := authz.NormalizeRole(parsed.Role)

	claims := AccessClaims{
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		Subject:   parsed.Subject,
		Role:      role,
		ExpiresAt: exp,
		JWTID:     parsed.ID,
	}
	if parsed.NotBefore != nil {
		claims.NotBefore = parsed.NotBefore.Time.UTC()
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeAccessTokenInvalid, "access token signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeAccessTokenInvalid, "access token alg is invalid")
	}
	return apperrors.New(apperrors.CodeAccessTokenInvalid, "access token is invalid")
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
