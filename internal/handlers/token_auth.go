package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/para-athletics/athlete-monitor/internal/models"
)

const (
	// SessionCookieName is the cookie carrying the session token for
	// browser clients; API clients send a bearer header instead.
	SessionCookieName = "athlete_monitor_token"

	tokenIssuer = "athlete-monitor"
)

// Session is the explicit session object built from a verified token. It is
// created on successful login and torn down on logout; no ambient login
// state exists anywhere else.
type Session struct {
	Username  string
	Role      models.UserRole
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenAuthMiddleware authenticates requests with signed session tokens.
type TokenAuthMiddleware struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenAuthMiddleware(secret string, ttl time.Duration) *TokenAuthMiddleware {
	return &TokenAuthMiddleware{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a session token for an authenticated identity.
func (tam *TokenAuthMiddleware) Issue(identity *models.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tam.ttl)

	claims := sessionClaims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tam.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Parse validates a token and rebuilds the session it represents.
func (tam *TokenAuthMiddleware) Parse(token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tam.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	session := &Session{
		Username: claims.Subject,
		Role:     models.UserRole(claims.Role),
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// AuthMiddleware returns a Gin middleware that requires a valid session.
// The token is read from the Authorization header first, then the session
// cookie.
func (tam *TokenAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
			c.Abort()
			return
		}

		session, err := tam.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("session", session)
		c.Set("username", session.Username)
		c.Set("user_role", session.Role)

		c.Next()
	}
}

// RequireRoleMiddleware gates a route group to the given roles. It must run
// after AuthMiddleware.
func (tam *TokenAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{Message: "insufficient permissions"})
		c.Abort()
	}
}

// SessionFromContext returns the verified session for the request, or nil.
func SessionFromContext(c *gin.Context) *Session {
	value, exists := c.Get("session")
	if !exists {
		return nil
	}
	session, ok := value.(*Session)
	if !ok {
		return nil
	}
	return session
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie
}
