package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/para-athletics/athlete-monitor/internal/services"
	"github.com/para-athletics/athlete-monitor/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
	tokens  *TokenAuthMiddleware
}

func NewAuthHandler(service services.AuthService, tokens *TokenAuthMiddleware, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		tokens:      tokens,
	}
}

// Register creates a new account
// @Summary Register a new account
// @Description Create an athlete or coach account; usernames are unique
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{} "Account created"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	h.LogRequest(c, "Registering account", "username", req.Username)

	ok, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, ErrorResponse{Message: "username already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"registered": true,
		"username":   req.Username,
	})
}

// Login verifies credentials and opens a session
// @Summary Log in
// @Description Verify credentials and issue a session token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} services.LoginResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	h.LogRequest(c, "Login attempt", "username", req.Username)

	identity, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if identity == nil {
		// Same body for unknown username and wrong password.
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid username or password"})
		return
	}

	token, expiresAt, err := h.tokens.Issue(identity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, token, int(h.tokens.ttl.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, services.LoginResponse{
		Token:     token,
		Username:  identity.Username,
		Role:      identity.Role,
		ExpiresAt: expiresAt,
	})
}

// Logout tears down the session
// @Summary Log out
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

// Me returns the current session
// @Summary Current session
// @Description Return the authenticated username and role
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":   session.Username,
		"role":       session.Role,
		"expires_at": session.ExpiresAt,
	})
}
