package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func LoggerMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("log", log)
		c.Next()
	}
}

func GetLogger(c *gin.Context) zerolog.Logger {
	log, exists := c.Get("log")
	if !exists {
		return zerolog.Nop()
	}
	return log.(zerolog.Logger)
}
