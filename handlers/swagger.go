package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the auth service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>qrgate-auth — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the QR authentication endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "qrgate-auth", "version": "v0.1.0" },
  "paths": {
    "/api/qrcode": {
      "get": { "summary": "Create a session and return its QR code", "responses": { "200": { "description": "sessionId, qrcode data URL, scanUrl, expiresAt" } } }
    },
    "/api/qrcode/status/{sessionId}": {
      "get": { "summary": "Poll session status", "responses": { "200": { "description": "status plus token when authenticated" }, "404": { "description": "session not found or expired" } } }
    },
    "/api/auth/scan/{sessionId}": {
      "post": { "summary": "Complete a pending session from a second device", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"deviceInfo":{"type":"string"}}}}}}, "responses": { "200": { "description": "authentication successful" }, "400": { "description": "session not pending" }, "404": { "description": "session not found or expired" } } }
    },
    "/api/user/validate": {
      "get": { "summary": "Validate the presented bearer token", "responses": { "200": { "description": "valid with userId and expiresAt" }, "401": { "description": "missing, invalid, expired or revoked token" } } }
    },
    "/api/user/revoke": {
      "post": { "summary": "Revoke the presented bearer token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"all":{"type":"boolean"}}}}}}, "responses": { "200": { "description": "revoked" }, "401": { "description": "missing or invalid token" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
