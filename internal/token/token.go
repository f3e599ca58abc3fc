package token

import (
	"fmt"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"

	"github.com/devffery/task-two/internal/domain"
)

// Issuer signs and validates stateless access tokens. Tokens are
// self-contained: they carry the user identity and an expiry, signed with
// a single server-held secret.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewIssuer constructs a token issuer using HS256.
func NewIssuer(secret, issuer string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// AccessTokenClaims represent the custom JWT payload for access tokens.
type AccessTokenClaims struct {
	Email       string `json:"email"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
	IsAdmin     bool   `json:"is_admin,omitempty"`
	IsStaff     bool   `json:"is_staff,omitempty"`
}

// Issue produces a signed JWT for the user.
func (i *Issuer) Issue(user domain.User) (string, error) {
	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: i.secret},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("new signer: %w", err)
	}

	now := time.Now().UTC()
	stdClaims := gojwt.Claims{
		Subject:   user.ID.String(),
		Issuer:    i.issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		NotBefore: gojwt.NewNumericDate(now),
		Expiry:    gojwt.NewNumericDate(now.Add(i.ttl)),
	}

	custom := AccessTokenClaims{
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
		IsAdmin:     user.IsAdmin,
		IsStaff:     user.IsStaff,
	}

	signed, err := gojwt.Signed(signer).Claims(stdClaims).Claims(custom).Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize jwt: %w", err)
	}
	return signed, nil
}

// Validate checks signature, issuer, and expiry, and returns the embedded
// user identity.
func (i *Issuer) Validate(token string) (uuid.UUID, *AccessTokenClaims, error) {
	parsed, err := gojwt.ParseSigned(token, []gojose.SignatureAlgorithm{gojose.HS256})
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("parse token: %w", err)
	}

	var std gojwt.Claims
	var custom AccessTokenClaims
	if err := parsed.Claims(i.secret, &std, &custom); err != nil {
		return uuid.Nil, nil, fmt.Errorf("verify token: %w", err)
	}

	if err := std.Validate(gojwt.Expected{Issuer: i.issuer, Time: time.Now().UTC()}); err != nil {
		return uuid.Nil, nil, fmt.Errorf("validate claims: %w", err)
	}

	userID, err := uuid.Parse(std.Subject)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("parse subject: %w", err)
	}
	return userID, &custom, nil
}
