package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long session tokens stay valid unless configured
// otherwise. There is no revocation list; logout is client-side discard.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is the single outcome for malformed, badly signed and
// expired tokens. Callers never learn which case it was.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents session token claims.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the given secret and TTL.
// A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate issues a signed token embedding the user ID and an expiry.
func (s *TokenService) Generate(userID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a token and returns the embedded user ID. It fails closed:
// any parse, signature or expiry problem collapses to ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}
