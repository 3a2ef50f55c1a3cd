package middleware

import "github.com/gin-gonic/gin" // Gin web framework

// NoCache disables client-side caching of API responses
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate") // Disable caching
		c.Header("Pragma", "no-cache")                                   // HTTP/1.0 compatibility
		c.Header("Expires", "0")                                         // Expire immediately
		c.Next()                                                         // Proceed to the next handler
	}
}
