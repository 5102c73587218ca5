package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yoockh/huffaz-portal/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token revoked")
)

// Principal is the authenticated caller derived from a verified session token.
type Principal struct {
	ID    string
	Email string
	Role  models.UserRole

	// token id and expiry, needed to revoke the session on logout
	TokenID   string
	ExpiresAt time.Time
}

func (p *Principal) IsAdmin() bool { return p != nil && p.Role == models.RoleAdmin }

type Claims struct {
	UserID string          `json:"userId"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Revoker tracks token ids invalidated before their natural expiry.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type TokenService struct {
	secret  []byte
	ttl     time.Duration
	revoker Revoker
	now     func() time.Time
}

// NewTokenService signs with HS256. revoker may be nil, in which case logout
// only clears the cookie.
func NewTokenService(secret string, ttl time.Duration, revoker Revoker) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, revoker: revoker, now: time.Now}
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(u *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature, expiry and revocation. Any failure is reported as
// ErrInvalidToken or ErrRevokedToken so callers cannot tell the cases apart
// from a missing token.
func (s *TokenService) Verify(ctx context.Context, raw string) (*Principal, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || tok == nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	if s.revoker != nil && claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrRevokedToken
		}
	}

	return &Principal{
		ID:        claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *TokenService) Revoke(ctx context.Context, p *Principal) error {
	if s.revoker == nil || p == nil || p.TokenID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, p.TokenID, p.ExpiresAt)
}
