package jwt

import (
	"errors"
	"fmt"
	"time"

	"medical-appointments-api/config"
	"medical-appointments-api/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signature, malformed payload, missing
// claims and expiry. Callers never learn which.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the full payload of an access token: who the subject is and
// which actor table they live in.
type Claims struct {
	SubjectID uint        `json:"user_id"`
	Role      entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed, time-bound access tokens. It is
// stateless; validity is bounded only by the configured TTL.
type Service struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
}

func NewService(cfg config.JWTConfig) (*Service, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", cfg.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", cfg.Algorithm)
	}
	return &Service{
		secret: []byte(cfg.Secret),
		method: method,
		expiry: cfg.AccessExpiry,
	}, nil
}

// Generate signs a token for the subject with an absolute expiry of
// now + TTL.
func (s *Service) Generate(subjectID uint, role entity.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Validate checks signature and expiry and requires both the subject and
// the role claim to be present and well-formed.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.SubjectID == 0 || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Expiry returns the configured token TTL.
func (s *Service) Expiry() time.Duration {
	return s.expiry
}
