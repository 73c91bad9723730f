// SPDX-License-Identifier: MIT
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thatcatcamp/picodemo/internal/config"
)

// cdnOrigins are the hosts the default stylesheets and scripts load from
var cdnOrigins = []string{"https://cdn.jsdelivr.net", "https://unpkg.com"}

// SecurityHeadersMiddleware adds security headers to all responses
func SecurityHeadersMiddleware() gin.HandlerFunc {
	cdn := strings.Join(cdnOrigins, " ")

	// htmx evaluates the inline theme directive, so inline scripts stay allowed
	csp := "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' " + cdn + "; " +
		"style-src 'self' 'unsafe-inline' " + cdn + "; " +
		"img-src 'self' data: https:; " +
		"font-src 'self' data: " + cdn + "; " +
		"connect-src 'self'"

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", csp)

		if config.GetBool("server.tls_enabled") {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
