package proxy

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qrgate/qrgate/pkg/logger"
	"github.com/qrgate/qrgate/pkg/middleware"
)

// headers recomputed by the transport layer rather than copied from upstream
var excludedHeaders = map[string]bool{
	"content-length":    true,
	"transfer-encoding": true,
	"connection":        true,
}

// Handler wires bearer validation and upstream forwarding into gin. Any
// method under the routing prefix is validated and relayed.
type Handler struct {
	fwd       *Forwarder
	validator middleware.TokenValidator
	prefix    string
}

func NewHandler(fwd *Forwarder, v middleware.TokenValidator, prefix string) *Handler {
	if prefix == "" {
		prefix = "/api"
	}
	return &Handler{fwd: fwd, validator: v, prefix: strings.TrimRight(prefix, "/")}
}

func (h *Handler) Register(r *gin.Engine) {
	// unauthenticated requests to protected paths get 403
	r.Any(h.prefix+"/*path", middleware.TokenAuth(h.validator, http.StatusForbidden), h.proxyRequest)
}

func (h *Handler) proxyRequest(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read request body"})
			return
		}
		body = b
	}

	req := &Request{
		Method: c.Request.Method,
		Path:   StripRoutePrefix(c.Request.URL.Path, h.prefix),
		Header: c.Request.Header,
		Query:  c.Request.URL.Query(),
		Body:   body,
	}

	resp, err := h.fwd.Forward(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("upstream proxy error (%s %s): %v", req.Method, req.Path, err)
		if IsTimeout(err) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"success": false, "error": "Gateway timeout"})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Bad gateway - upstream service unavailable"})
		}
		return
	}

	for k, vs := range resp.Header {
		if excludedHeaders[strings.ToLower(k)] {
			continue
		}
		for _, v := range vs {
			c.Writer.Header().Add(k, v)
		}
	}
	c.Data(resp.Status, resp.Header.Get("Content-Type"), resp.Body)
}
