package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Email string `json:"email,omitempty"`

	jwtlib.RegisteredClaims
}

// HMACVerifier checks HS256 tokens signed with a shared secret. It can also
// mint tokens for local development and tests.
type HMACVerifier struct {
	secret []byte
	issuer string

	now func() time.Time
}

func NewHMACVerifier(secret, issuer string) *HMACVerifier {
	return &HMACVerifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}
}

func (v *HMACVerifier) Issue(userID, email string, ttl time.Duration) (string, error) {
	if len(v.secret) == 0 || strings.TrimSpace(userID) == "" || ttl <= 0 {
		return "", ErrTokenInvalid
	}
	now := v.now().UTC()
	c := Claims{
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			Issuer:    v.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(v.secret)
}

func (v *HMACVerifier) Verify(_ context.Context, rawToken string) (Identity, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return Identity{}, ErrTokenMissing
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(v.issuer))
	}

	var c Claims
	tok, err := jwtlib.NewParser(opts...).ParseWithClaims(rawToken, &c, func(*jwtlib.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || strings.TrimSpace(c.Subject) == "" {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{UserID: c.Subject, Email: strings.TrimSpace(c.Email)}, nil
}

var _ Verifier = (*HMACVerifier)(nil)
