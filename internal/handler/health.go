package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"vault-core/internal/handler/response"
)

var startTime = time.Now()

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status": "ok",
		"uptime": time.Since(startTime).String(),
	})
}
