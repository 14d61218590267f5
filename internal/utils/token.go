package utils // package utils provides helper functions for password hashing and identity tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/camdenmotors/dealerweb/internal/model"
)

// TokenTTL is the lifetime of an identity token. The cookie max-age
// mirrors this value exactly.
const TokenTTL = time.Hour

// IdentityCookie is the name of the HTTP-only cookie carrying the signed
// identity token.
const IdentityCookie = "jwt"

// IdentityContextKey is the echo context key under which the decoded
// request identity is stored for downstream middleware and handlers.
const IdentityContextKey = "identity"

// Identity is the account snapshot embedded in a signed token. It carries
// every account field except the password hash. The snapshot is detached:
// account updates do not change an already-issued token, so any handler
// that mutates identity fields must re-issue the token.
type Identity struct {
	AccountID uint64 `json:"account_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Privileged reports whether the identity may manage inventory and respond
// to reviews.
func (i Identity) Privileged() bool { return model.Privileged(i.Role) }

// identityClaims wraps Identity with the registered JWT claims so that
// expiry and issuance are validated by the jwt library itself.
type identityClaims struct {
	Identity
	jwt.RegisteredClaims
}

var errInvalidToken = errors.New("invalid identity token")

// IssueToken builds and signs an HS256 JWT embedding the account snapshot.
// The expiration is exactly TokenTTL after issuance. The password hash is
// never part of the claims; the Identity type cannot carry it.
func IssueToken(acct model.Account, secret string, now time.Time) (string, error) {
	claims := identityClaims{
		Identity: Identity{
			AccountID: acct.ID,
			FirstName: acct.FirstName,
			LastName:  acct.LastName,
			Email:     acct.Email,
			Role:      acct.Role,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.UTC()),
			ExpiresAt: jwt.NewNumericDate(now.UTC().Add(TokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// DecodeToken parses and validates a signed identity token. It returns an
// error when the signature is invalid or the token has expired; callers
// treat any error as an anonymous request rather than a failure.
func DecodeToken(raw, secret string) (Identity, error) {
	var claims identityClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything other than HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, errInvalidToken
	}
	return claims.Identity, nil
}
