package routes

import (
	"github.com/Manakin-Wraith/Cheap-Cheap/controllers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterPromotionRoutes sets up the read-only API routes.
func RegisterPromotionRoutes(r *gin.Engine, pc *controllers.PromotionController) {
	api := r.Group("/api")
	api.GET("/promotions", pc.GetPromotions)
	api.GET("/health", controllers.HealthCheck)
}

// RegisterMetricsRoute exposes the registry in Prometheus text format.
func RegisterMetricsRoute(r *gin.Engine, registry *prometheus.Registry) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
