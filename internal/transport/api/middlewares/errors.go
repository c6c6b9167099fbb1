package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func statusErrorText(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusUnprocessableEntity:
		return "unprocessable entity"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal server error"
	}
}

// Errors превращает накопленные в контексте ошибки в JSON-ответ
// {"error": msg}. Наружу уходит текст только публичных ошибок, приватные
// заменяются нейтральным описанием статуса.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// обрабатываем только первую ошибку
		firstErr := c.Errors[0]
		msg := statusErrorText(c.Writer.Status())
		if firstErr.IsType(gin.ErrorTypePublic) {
			msg = firstErr.Error()
		}

		c.JSON(c.Writer.Status(), gin.H{"error": msg})
		c.Abort()
	}
}
