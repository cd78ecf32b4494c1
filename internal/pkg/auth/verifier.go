package auth

import (
	"context"
	"errors"
	"fmt"

	"jobfinder/internal/config"
)

var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Identity is the caller as established by a verified token.
type Identity struct {
	UserID string
	Email  string
}

type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Identity, error)
}

// NewVerifier returns nil for AuthModeNone; callers then trust the path user id.
func NewVerifier(ctx context.Context, cfg config.AuthConfig) (Verifier, error) {
	switch cfg.Mode {
	case config.AuthModeNone, "":
		return nil, nil
	case config.AuthModeHMAC:
		return NewHMACVerifier(cfg.HMACSecret, cfg.Issuer), nil
	case config.AuthModeOIDC:
		return NewOIDCVerifier(ctx, OIDCConfig{
			Issuer:   cfg.Issuer,
			JWKSURL:  cfg.JWKSURL,
			Audience: cfg.Audience,
		})
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}
