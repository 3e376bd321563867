package middlewares

import (
	"github.com/gin-gonic/gin"
)

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		// The address search widget loads its script from t1.daumcdn.net.
		c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self' https://t1.daumcdn.net https://*.daumcdn.net; frame-src https://*.daum.net https://*.daumcdn.net; img-src 'self' data:")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		c.Next()
	}
}
