// Package token verifies bearer tokens from two issuers: locally issued
// symmetric (HS256) tokens and externally issued asymmetric (RS256) tokens
// whose public keys rotate through a remote key set. Every verification
// failure collapses to ErrInvalidToken; callers translate it to 401.
package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Rahulbariki/brand-automation/core/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified payload of a bearer token.
type Claims map[string]any

func (c Claims) str(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}

// Subject returns the sub claim: the external identity id for externally
// issued tokens, the email for locally issued ones.
func (c Claims) Subject() string { return c.str("sub") }

func (c Claims) Email() string { return c.str("email") }

func (c Claims) Name() string {
	if v := c.str("name"); v != "" {
		return v
	}
	return c.str("full_name")
}

// External reports whether the token came from the external issuer
// (set by the verifier, not carried in the token itself).
func (c Claims) External() bool {
	v, _ := c["__external"].(bool)
	return v
}

type Verifier struct {
	secret   []byte
	tokenTTL time.Duration
	audience string
	issuer   string
	keys     *keySet
}

func NewVerifier(cfg config.AuthConfig) *Verifier {
	v := &Verifier{
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
		audience: cfg.Audience,
		issuer:   cfg.Issuer,
	}
	if cfg.ExternalEnabled() {
		v.keys = newKeySet(cfg.JWKSURL, cfg.JWKSTTL)
	}
	return v
}

// Verify validates raw and returns its claims. The header's key-identifier
// field decides the verification path: absent kid means a locally issued
// HS256 token, present kid means an externally issued RS256 token.
func (v *Verifier) Verify(ctx context.Context, raw string) (Claims, error) {
	header, err := unverifiedHeader(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	kid, _ := header["kid"].(string)
	if kid == "" {
		return v.verifyLocal(raw)
	}
	return v.verifyExternal(ctx, raw, kid)
}

func (v *Verifier) verifyLocal(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return Claims(mc), nil
}

func (v *Verifier) verifyExternal(ctx context.Context, raw, kid string) (Claims, error) {
	if v.keys == nil {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		// No WithIssuedAt: the issuer's iat can sit slightly in the future,
		// so the issued-at check is deliberately skipped.
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.Parse(raw,
		func(t *jwt.Token) (any, error) {
			return v.keys.Key(ctx, kid)
		},
		opts...,
	)
	if err != nil || !parsed.Valid {
		slog.DebugContext(ctx, "external token rejected", "kid", kid, "error", err)
		return nil, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := Claims(mc)
	claims["__external"] = true
	return claims, nil
}

// IssueLocal signs a local HS256 access token carrying the given claims plus
// an expiry of the configured TTL.
func (v *Verifier) IssueLocal(claims map[string]any) (string, error) {
	mc := jwt.MapClaims{}
	for k, val := range claims {
		mc[k] = val
	}
	mc["exp"] = time.Now().Add(v.tokenTTL).Unix()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	signed, err := tok.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func unverifiedHeader(raw string) (map[string]any, error) {
	parser := jwt.NewParser()
	t, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}
	return t.Header, nil
}
