// Package tokens проверяет и выпускает JWT, общие с основным приложением.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token expired")

// UserClaims — клеймы пользовательского токена. ID — идентификатор
// пользователя в основном приложении.
type UserClaims struct {
	jwt.RegisteredClaims
	ID int64
}

func GenerateUserJWT(id int64, expire time.Duration, key []byte) (string, error) {
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
		ID: id,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating user jwt token: %s", err.Error())
	}
	return tokenString, nil
}

func ValidateUserJWT(tokenString string, key []byte) (*UserClaims, error) {
	claims := new(UserClaims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parsing jwt token: %w", err)
	}
	return claims, nil
}
