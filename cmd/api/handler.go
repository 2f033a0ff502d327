package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"safymenu-backend/pkg/config"
)

// Handler owns the HTTP surface of the service
type Handler struct {
	router *gin.Engine
	cfg    *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	router := gin.Default()
	h := &Handler{router: router, cfg: cfg}
	SetupRoutes(router, h)
	return h
}

// Start runs the HTTP server
func (h *Handler) Start(addr string) error {
	return h.router.Run(addr)
}

// Timestamp returns the server time in unix milliseconds for clients that
// present the shared request token.
func (h *Handler) Timestamp(c *gin.Context) {
	token := c.Query("token")

	switch {
	case token == "":
		c.String(http.StatusUnauthorized, "Token não enviado!\nEnvie o token como json { \"token\" : \"token_key\" }.")
	case token != h.cfg.TimestampToken:
		c.String(http.StatusForbidden, "Não autorizado! O token não corresponde ao token de requisição..")
	default:
		c.JSON(http.StatusOK, gin.H{"timestamp": time.Now().UnixMilli()})
	}
}
