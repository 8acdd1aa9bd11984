package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dutywire/internal/shared/authorization"
	"dutywire/internal/shared/biztime"
)

// Claims carries the caller's identity for the allocation engine: who the
// officer is, which org they act in, and the rank and badge used for
// seniority ordering and tie-breaks.
type Claims struct {
	OfficerID   string                 `json:"officer_id"`
	OrgID       string                 `json:"org_id"`
	Role        authorization.UserRole `json:"role"`
	Rank        *string                `json:"rank,omitempty"`
	BadgeNumber *string                `json:"badge_number,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

// Generate signs an access token for an officer.
func (s *JWTService) Generate(officerID, orgID string, role authorization.UserRole, rank, badgeNumber *string) (string, error) {
	now := biztime.NowUTC()
	exp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)

	claims := &Claims{
		OfficerID:   officerID,
		OrgID:       orgID,
		Role:        role,
		Rank:        rank,
		BadgeNumber: badgeNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates an access token.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
