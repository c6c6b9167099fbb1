package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/vitrine/internal/transport/api/tokens"
)

var ErrTokenNotExist = errors.New("token not exist")

const CurrentUserIDKey = "currentUserID"

func checkAuthorization(c *gin.Context, jwtSecret []byte) (*tokens.UserClaims, error) {
	tokenHeader := c.GetHeader("Authorization")
	const bearer = "Bearer "

	if !strings.HasPrefix(tokenHeader, bearer) {
		return nil, ErrTokenNotExist
	}
	return tokens.ValidateUserJWT(tokenHeader[len(bearer):], jwtSecret) //nolint:wrapcheck
}

// AuthRequired проверяет авторизацию запроса и кладет id пользователя в
// контекст под ключом CurrentUserIDKey.
func AuthRequired(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := checkAuthorization(c, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			if !errors.Is(err, ErrTokenNotExist) && !errors.Is(err, tokens.ErrTokenExpired) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			return
		}
		c.Set(CurrentUserIDKey, claims.ID)
		c.Next()
	}
}

// CurrentUserID достает id пользователя, положенный AuthRequired.
func CurrentUserID(c *gin.Context) int64 {
	id, _ := c.Get(CurrentUserIDKey)
	userID, _ := id.(int64)
	return userID
}
