package router

import (
	"os"

	"github.com/gin-gonic/gin"
)

// URLMiddleware stores the base URL of the API in the request context
// so that handlers can construct absolute links.
func URLMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("baseURL", os.Getenv("API_URL"))
	}
}
