package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/example/synapz/internal/auth"
	"github.com/example/synapz/internal/logger"
)

const (
	userIDKey         = "user_id"
	adminSecretHeader = "X-Admin-Secret"
)

// requestLogger logs one line per request, level chosen by status
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID := c.GetString(userIDKey); userID != "" {
			fields = append(fields, "user_id", userID)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		return cookie
	}
	return ""
}

// identify resolves the caller from the token, if any
func (s *Server) identify(c *gin.Context) (string, bool) {
	tokenString := extractToken(c)
	if tokenString == "" {
		return "", false
	}
	claims, err := s.Tokens.Parse(tokenString)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

func (s *Server) setUser(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
	c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
}

// requireAuth rejects requests without a valid token
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := s.identify(c)
		if !ok {
			respondStatus(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		s.setUser(c, userID)
		c.Next()
	}
}

// optionalAuth identifies the caller when a valid token is present
func (s *Server) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := s.identify(c); ok {
			s.setUser(c, userID)
		}
		c.Next()
	}
}

// requireAdmin checks the admin secret header in constant time
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.AdminSecret == "" {
			respondStatus(c, http.StatusServiceUnavailable, "Admin API is not configured")
			return
		}
		got := c.GetHeader(adminSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.AdminSecret)) != 1 {
			respondStatus(c, http.StatusUnauthorized, "Unauthorized. Valid X-Admin-Secret header required.")
			return
		}
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// ipRateLimiter keeps one token bucket per client IP
type ipRateLimiter struct {
	mu     sync.Mutex
	limits map[string]*rate.Limiter
	every  rate.Limit
	burst  int
}

func newIPRateLimiter(every rate.Limit, burst int) *ipRateLimiter {
	return &ipRateLimiter{limits: make(map[string]*rate.Limiter), every: every, burst: burst}
}

func (rl *ipRateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.every, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

func (rl *ipRateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getLimiter(c.ClientIP()).Allow() {
			respondStatus(c, http.StatusTooManyRequests, "Too many requests, slow down")
			return
		}
		c.Next()
	}
}
