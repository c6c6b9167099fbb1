package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const SchedulerTokenHeader = "X-Scheduler-Token"

// SchedulerAuth пускает только запросы планировщика/вебхуков с общим
// статическим токеном. Эти маршруты не несут пользовательского контекста,
// поэтому JWT здесь не подходит.
func SchedulerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(SchedulerTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(header), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
