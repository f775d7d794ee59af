package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qrgate/qrgate/internal/qrcode"
	"github.com/qrgate/qrgate/internal/sessions"
	"github.com/qrgate/qrgate/pkg/logger"
	"github.com/qrgate/qrgate/pkg/metrics"
)

// QRCodeHandler serves session creation (with QR rendering) and status polling
type QRCodeHandler struct {
	qr         *qrcode.Service
	sessions   *sessions.Store
	sessionTTL time.Duration
}

func NewQRCodeHandler(qr *qrcode.Service, s *sessions.Store, sessionTTL time.Duration) *QRCodeHandler {
	return &QRCodeHandler{qr: qr, sessions: s, sessionTTL: sessionTTL}
}

// Register routes under /api/qrcode
func (h *QRCodeHandler) Register(rg *gin.RouterGroup) {
	q := rg.Group("/api/qrcode")
	q.GET("", h.Generate)
	q.POST("", h.Generate)
	q.GET("/status/:sessionId", h.Status)
}

// Generate creates a pending session and returns its QR code
func (h *QRCodeHandler) Generate(c *gin.Context) {
	res, err := h.qr.Generate(h.sessionTTL)
	if err != nil {
		logger.Errorf("qr code generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate QR code",
		})
		return
	}
	metrics.SessionsCreated.Inc()
	logger.Debugf("created session %.8s...", res.SessionID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"sessionId": res.SessionID,
			"qrcode":    res.QRCode,
			"scanUrl":   res.ScanURL,
			"expiresAt": res.ExpiresAt.UnixMilli(),
		},
	})
}

// Status reports the session state; the token is included only once the
// session is authenticated. Expired and unknown sessions both answer 404.
func (h *QRCodeHandler) Status(c *gin.Context) {
	sessionID := c.Param("sessionId")
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Session not found or expired",
		})
		return
	}

	data := gin.H{
		"status":    sess.Status,
		"expiresAt": sess.ExpiresAt.UnixMilli(),
	}
	if sess.Status == sessions.StatusAuthenticated && sess.TokenID != "" {
		data["token"] = sess.TokenID
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
