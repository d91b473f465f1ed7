package routes

import (
	"github.com/saandeepkondury/py-trends-API/config"
	"github.com/saandeepkondury/py-trends-API/controller"
	"github.com/saandeepkondury/py-trends-API/metric"
	"github.com/saandeepkondury/py-trends-API/middleware"
	"github.com/saandeepkondury/py-trends-API/service"

	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.SystemConfigs, newClient service.ClientFactory, m *metric.Metrics) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.ZerologMiddleware())
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.Config))
	r.Use(middleware.RateLimiter(cfg.Config))

	// --- 1. Services ---
	trendsSvc := service.NewTrendsService(newClient, m)

	// --- 2. Plain routes ---
	controller.NewHealthController().RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// --- 3. Typed operations ---
	api := humagin.New(r, controller.NewHumaConfig())
	controller.NewTrendsController(trendsSvc, cfg.Config.ApiKey).RegisterRoutes(api)

	return r
}
