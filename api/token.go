package api

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/linesmerrill/legal-connect-api/models"
)

// ErrTokenRevoked is returned by Parse for a token ended by logout
var ErrTokenRevoked = errors.New("token has been revoked")

type sessionClaims struct {
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	ProfilePhoto string      `json:"profilePhoto,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the bearer tokens that carry a session
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewTokenIssuer creates an HS256 issuer whose tokens live for ttl
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Issue starts a session for user
func (ti *TokenIssuer) Issue(user models.User) (models.Session, error) {
	now := ti.now().UTC().Truncate(time.Second)
	claims := sessionClaims{
		Email:        user.Details.Email,
		Role:         user.Details.Role,
		ProfilePhoto: user.Details.ProfilePicture,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return models.Session{}, errors.Wrap(err, "failed to sign token")
	}
	return claims.session(signed), nil
}

// Parse verifies token and returns the session it carries
func (ti *TokenIssuer) Parse(token string) (models.Session, error) {
	claims, err := ti.verify(token)
	if err != nil {
		return models.Session{}, err
	}
	return claims.session(token), nil
}

// Revoke ends the session carried by token. Revocations are kept until the token
// would have expired anyway.
func (ti *TokenIssuer) Revoke(token string) error {
	claims, err := ti.verify(token)
	if err != nil {
		return err
	}

	now := ti.now()
	ti.mu.Lock()
	defer ti.mu.Unlock()
	for id, exp := range ti.revoked {
		if now.After(exp) {
			delete(ti.revoked, id)
		}
	}
	ti.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

func (ti *TokenIssuer) verify(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ti.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("invalid token: missing subject or id")
	}

	ti.mu.Lock()
	_, revoked := ti.revoked[claims.ID]
	ti.mu.Unlock()
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func (c *sessionClaims) session(token string) models.Session {
	s := models.Session{
		Token:        token,
		UserID:       c.Subject,
		Email:        c.Email,
		Role:         c.Role,
		ProfilePhoto: c.ProfilePhoto,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}
