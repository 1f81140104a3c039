package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vault-core/internal/handler"
	"vault-core/pkg/monitor"
)

// NewHTTPRouter builds the Gin engine with middleware and all routes.
func NewHTTPRouter(vault *handler.VaultHandler, sec *handler.SecurityHandler) *gin.Engine {
	r := gin.Default()

	r.Use(monitor.PrometheusMiddleware())

	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		v := api.Group("/vault")
		{
			v.POST("/transfer", vault.Transfer)
			v.GET("/balance", vault.Balance)
		}

		s := api.Group("/security")
		{
			s.GET("/status", sec.Status)
			s.POST("/evaluate", sec.Evaluate)
			s.POST("/freeze", sec.Freeze)
			s.POST("/unfreeze", sec.Unfreeze)
			s.GET("/history", sec.History)
			s.DELETE("/history", sec.ClearHistory)
		}
	}

	return r
}
