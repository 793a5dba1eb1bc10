package security

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JungleeAadmi/component-storage/internal/middleware"
	"github.com/JungleeAadmi/component-storage/internal/rate_limiter"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
)

const (
	loginLimit  = 10
	loginWindow = 5 * time.Minute
)

type LoginHandler struct {
	users       UserFinder
	tokens      *TokenService
	rateLimiter *rate_limiter.RateLimiter
}

func NewLoginHandler(users UserFinder, tokens *TokenService, limiter *rate_limiter.RateLimiter) *LoginHandler {
	return &LoginHandler{
		users:       users,
		tokens:      tokens,
		rateLimiter: limiter,
	}
}

func NewLoginRateLimiter() *rate_limiter.RateLimiter {
	return rate_limiter.NewRateLimiter(loginLimit, loginWindow)
}

func (l *LoginHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/login", l.LoginHandler())
}

func (l *LoginHandler) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := ClientKey(c)
		if !l.rateLimiter.IsAllowed(clientKey) {
			resetAt := time.Now().Add(loginWindow).Format(time.RFC3339)
			c.Header("X-RateLimit-Limit", strconv.Itoa(loginLimit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetAt)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error_kind": "rate_limited",
				"message":    "Too many login attempts, try again later",
				"reset_at":   resetAt,
			})
			return
		}

		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.AbortWithValidation(c, "invalid request payload")
			return
		}

		user, err := AuthenticateUser(req.Username, req.Password, l.users)
		if errors.Is(err, ErrInvalidCredentials) {
			abortUnauthorized(c, "Invalid username or password")
			return
		} else if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		token, err := l.tokens.GenerateJWT(user.ID, user.Role, user.Username)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// ClientKey identifies the caller for rate limiting. Clients behind a private address are
// told apart by their user agent as well.
func ClientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if first, _, found := strings.Cut(clientIP, ","); found {
		clientIP = first
	}
	clientIP = strings.TrimSpace(clientIP)

	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsPrivate() || parsed.IsLoopback() || parsed.IsLinkLocalUnicast()
}
