package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/vitrine/internal/domain"
)

// abortWithServiceErr транслирует ошибки сервисного слоя в HTTP-ответ.
// Бизнес-ошибки уходят клиенту с понятным текстом, все остальное — 500 с
// нейтральным сообщением (детали остаются в логе).
func abortWithServiceErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		abortPublic(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInsufficientBalance):
		abortPublic(c, http.StatusBadRequest, "insufficient balance")
	case errors.Is(err, domain.ErrInsufficientEarnings):
		abortPublic(c, http.StatusBadRequest, "insufficient earnings")
	case errors.Is(err, domain.ErrBelowMinimumPayout):
		abortPublic(c, http.StatusBadRequest, "amount below minimum payout")
	case errors.Is(err, domain.ErrServiceNotForSale):
		abortPublic(c, http.StatusBadRequest, "service is not available for sale")
	case errors.Is(err, domain.ErrForbidden):
		abortPublic(c, http.StatusForbidden, "forbidden")
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}

func abortPublic(c *gin.Context, status int, msg string) {
	_ = c.AbortWithError(status, errors.New(msg)).SetType(gin.ErrorTypePublic)
}
