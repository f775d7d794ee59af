package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qrgate/qrgate/internal/auth"
	"github.com/qrgate/qrgate/internal/sessions"
	"github.com/qrgate/qrgate/internal/tokens"
	"github.com/qrgate/qrgate/pkg/logger"
	"github.com/qrgate/qrgate/pkg/metrics"
	"github.com/qrgate/qrgate/pkg/middleware"
)

// ScanRequest is the optional body of a scan call
type ScanRequest struct {
	DeviceInfo string `json:"deviceInfo"`
}

// RevokeRequest optionally widens revocation to every token of the caller's user
type RevokeRequest struct {
	All bool `json:"all"`
}

// AuthHandler serves the scan endpoint and the bearer-protected token
// operations (validate, revoke)
type AuthHandler struct {
	coordinator *auth.Coordinator
	tokens      *tokens.Store
}

func NewAuthHandler(c *auth.Coordinator, t *tokens.Store) *AuthHandler {
	return &AuthHandler{coordinator: c, tokens: t}
}

// Register routes under /api/auth and /api/user
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/api/auth/scan/:sessionId", h.Scan)

	u := rg.Group("/api/user")
	u.Use(middleware.TokenAuth(middleware.StoreValidator{Store: h.tokens}, http.StatusUnauthorized))
	u.GET("/validate", h.Validate)
	u.POST("/revoke", h.Revoke)
}

// Scan completes a pending session: mints a token and links it
func (h *AuthHandler) Scan(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req ScanRequest
	// body is optional; ignore bind errors for an empty body
	_ = c.ShouldBindJSON(&req)

	_, err := h.coordinator.CompleteScan(sessionID, req.DeviceInfo)
	if err != nil {
		var npe *sessions.NotPendingError
		switch {
		case errors.Is(err, sessions.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Session not found or expired",
			})
		case errors.As(err, &npe):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": fmt.Sprintf("Session is not pending. Current status: %s", npe.Status),
			})
		default:
			logger.Errorf("scan authentication failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Authentication failed",
			})
		}
		return
	}

	metrics.ScansCompleted.Inc()
	metrics.TokensIssued.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Authentication successful",
	})
}

// Validate reports on the already-validated bearer (the middleware rejected
// anything unusable before we got here)
func (h *AuthHandler) Validate(c *gin.Context) {
	tokenID := c.GetString("tokenId")
	if tokenID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "reason": "internal_error"})
		return
	}

	resp := gin.H{"valid": true}
	if userID := c.GetString("userId"); userID != "" {
		resp["userId"] = userID
	}
	if tok, ok := h.tokens.Get(tokenID); ok {
		resp["expiresAt"] = tok.ExpiresAt.UnixMilli()
	}
	c.JSON(http.StatusOK, resp)
}

// Revoke invalidates the presented bearer, or with {"all":true} every token
// belonging to its user
func (h *AuthHandler) Revoke(c *gin.Context) {
	tokenID := c.GetString("tokenId")
	if tokenID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error"})
		return
	}

	var req RevokeRequest
	_ = c.ShouldBindJSON(&req)

	if req.All {
		userID := c.GetString("userId")
		n := h.tokens.RevokeAllForUser(userID)
		metrics.TokensRevoked.Add(float64(n))
		logger.Infof("revoked %d tokens for user %s", n, userID)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "All tokens revoked successfully",
		})
		return
	}

	h.tokens.Revoke(tokenID)
	metrics.TokensRevoked.Inc()
	logger.Infof("token revoked for user %s", c.GetString("userId"))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token revoked successfully",
	})
}
