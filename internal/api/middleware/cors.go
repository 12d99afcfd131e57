package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

const corsMaxAgeSeconds = 86400

// CORS allows the browser UI to call the API from the configured origins.
// A "*" entry allows every origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	policy := cors.New(cors.Options{
		AllowedOrigins:     allowedOrigins,
		AllowedMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposedHeaders:     []string{"X-Request-ID"},
		MaxAge:             corsMaxAgeSeconds,
		OptionsPassthrough: true,
	})

	return func(c *gin.Context) {
		policy.Handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			c.Request = r
		})).ServeHTTP(c.Writer, c.Request)

		// Preflights end here once the policy headers are written
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
