package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback only; production sets JWT_SECRET.
		secret = "DevSecretKeyHOTELDINE"
	}
	JWTSecret = []byte(secret)
}

// CustomClaims is the identity context every mutating operation receives.
// HotelID is nil for global-scope (admin) users.
type CustomClaims struct {
	UserID  uint   `json:"user_id"`
	Role    string `json:"role"`
	HotelID *uint  `json:"hotel_id,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, role string, hotelID *uint) (string, error) {
	claims := &CustomClaims{
		UserID:  userID,
		Role:    role,
		HotelID: hotelID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "hoteldine",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
