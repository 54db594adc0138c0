package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func GenerateJWT(secret []byte, userID uint, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   float64(userID),
		"email": email,
		"exp":   time.Now().Add(3 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}
