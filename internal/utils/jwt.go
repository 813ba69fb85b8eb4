package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type jwtCustomClaims struct {
	Principal string `json:"principal"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for the provided principal (customer
// phone, milkman phone or admin email) and role.
func GenerateToken(secret, principal, role string, ttl time.Duration) (string, error) {
	claims := &jwtCustomClaims{
		Principal: principal,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the embedded principal and role.
func ParseToken(secret, tokenString string) (principal, role string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}

	if claims, ok := token.Claims.(*jwtCustomClaims); ok && token.Valid {
		return claims.Principal, claims.Role, nil
	}

	return "", "", jwt.ErrTokenInvalidClaims
}
