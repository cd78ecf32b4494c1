package config

import (
	"fmt"
	"strings"
)

// AuthMode selects how the caller's identity is established.
type AuthMode string

const (
	// AuthModeNone trusts the user id sent by the client.
	AuthModeNone AuthMode = "none"
	// AuthModeHMAC verifies HS256 tokens signed with a shared secret.
	AuthModeHMAC AuthMode = "hmac"
	// AuthModeOIDC verifies provider-issued tokens against the issuer's JWKS.
	AuthModeOIDC AuthMode = "oidc"
)

func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "":
		*a = AuthModeNone
		return nil
	case "none", "hmac", "oidc":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: none, hmac, oidc)", v)
	}
}

// ProviderKind names the external job-search backend.
type ProviderKind string

const (
	ProviderAdzuna   ProviderKind = "adzuna"
	ProviderJobBoard ProviderKind = "jobboard"
)

func (p *ProviderKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "adzuna", "jobboard":
		*p = ProviderKind(v)
		return nil
	default:
		return fmt.Errorf("invalid ProviderKind: %q (valid options: adzuna, jobboard)", v)
	}
}
