package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"serviceregistry/interfaces"
	"serviceregistry/service"
)

// Credential headers presented by registered instances and by admins.
const (
	HeaderServiceID    = "x-service-id"
	HeaderServiceToken = "x-service-token"
	HeaderAdminKey     = "x-admin-key"
)

// InstanceAuth rejects requests whose x-service-id / x-service-token
// pair does not validate against the registry.
func InstanceAuth(registry interfaces.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderServiceID)
			token := c.Request().Header.Get(HeaderServiceToken)
			if id == "" || token == "" || !registry.ValidateInstanceAuth(id, token) {
				return service.NewAuthenticationError("invalid service credentials", nil)
			}
			return next(c)
		}
	}
}

// AdminAuth rejects requests whose x-admin-key does not match the
// configured admin key.
func AdminAuth(adminKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := c.Request().Header.Get(HeaderAdminKey)
			if presented == "" || !service.SecretsEqual(presented, adminKey) {
				return service.NewAuthenticationError("invalid admin key", nil)
			}
			return next(c)
		}
	}
}

// RateLimit applies a per-client-IP token bucket. Limiters for IPs idle
// longer than an hour are dropped on the next sweep.
func RateLimit(rps float64, burst int) echo.MiddlewareFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu        sync.Mutex
		clients   = make(map[string]*client)
		lastSweep = time.Now()
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			mu.Lock()
			now := time.Now()
			if now.Sub(lastSweep) > time.Hour {
				for k, v := range clients {
					if now.Sub(v.lastSeen) > time.Hour {
						delete(clients, k)
					}
				}
				lastSweep = now
			}
			cl, ok := clients[ip]
			if !ok {
				cl = &client{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
				clients[ip] = cl
			}
			cl.lastSeen = now
			allowed := cl.limiter.Allow()
			mu.Unlock()

			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

// SecurityHeaders sets the standard hardening headers on every response.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			return next(c)
		}
	}
}

// AccessLog logs one line per request.
func AccessLog(logger log.Logger) echo.MiddlewareFunc {
	logger = log.WithPrefix(logger, "component", "http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			level.Info(logger).Log(
				"msg", "request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"remote_ip", c.RealIP(),
			)
			return nil
		}
	}
}
