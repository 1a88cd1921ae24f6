package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OwnerClaims identifies the authenticated owner. Every owner-scoped
// endpoint resolves the acting ownerId from these claims and nowhere else.
type OwnerClaims struct {
	OwnerID string `json:"uid"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateOwnerToken(secret string, ownerID string, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := OwnerClaims{
		OwnerID: ownerID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   ownerID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func ParseOwnerToken(tokenStr string, secret string) (*OwnerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &OwnerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*OwnerClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
