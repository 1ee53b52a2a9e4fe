package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lamergameryt/entrypoint/internal/clock"
	"github.com/lamergameryt/entrypoint/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal is a verified caller identity with its resolved capability set.
type Principal struct {
	UserID       int64
	Name         string
	Capabilities []string
}

// HasCapability reports whether the principal holds the named capability,
// compared by exact string match.
func (p Principal) HasCapability(capability string) bool {
	for _, c := range p.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	// Roles carries the resolved capability names, not group names; the
	// verifier never needs to consult storage.
	Roles []string `json:"roles"`
}

// Tokens issues and verifies HS256 bearer tokens.
type Tokens struct {
	secret     []byte
	expiration time.Duration
	clock      clock.Clock
}

func NewTokens(secret string, expiration time.Duration, clk clock.Clock) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		expiration: expiration,
		clock:      clk,
	}
}

// Issue signs a token for the user carrying their capability set.
func (t *Tokens) Issue(user domain.User) (string, error) {
	now := t.clock.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiration)),
		},
		Name:  user.Name,
		Roles: CapabilitiesOf(user.Group),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token and returns the principal it names.
func (t *Tokens) Verify(token string) (Principal, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	return Principal{
		UserID:       userID,
		Name:         claims.Name,
		Capabilities: claims.Roles,
	}, nil
}
