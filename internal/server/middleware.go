package server

import (
	"net/http"
	"net/netip"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rockit-astro/lmountd/internal/registry"
	"github.com/rockit-astro/lmountd/pkg/lmount"
)

// RequestID tags each request and response with a correlation id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// ControlIPAllowlist rejects command requests originating from addresses
// outside the configured control machines. Loopback callers are always
// accepted so on-host tooling keeps working.
func ControlIPAllowlist(machines []registry.Machine, logger *zap.Logger) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(machines))
	for _, m := range machines {
		allowed[m.Addr.String()] = struct{}{}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if _, ok := allowed[ip]; ok {
			c.Next()
			return
		}
		if addr, err := netip.ParseAddr(ip); err == nil && addr.IsLoopback() {
			c.Next()
			return
		}

		logger.Warn("Rejected command from unauthorised address",
			zap.String("ip", ip),
			zap.String("path", c.Request.URL.Path))

		c.AbortWithStatusJSON(http.StatusForbidden, newCommandResponse(lmount.InvalidControlIP))
	}
}
