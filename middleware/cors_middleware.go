package middleware

import (
	"slices"
	"time"

	"github.com/saandeepkondury/py-trends-API/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS(cfg *model.EnvConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},

		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			APIKeyHeader,
			RequestIDHeader,
		},

		ExposeHeaders: []string{"Content-Length", RequestIDHeader},

		MaxAge: 12 * time.Hour,
	}

	// "*" (the default) opens the API to every origin, without credentials.
	if len(cfg.CorsOrigins) == 0 || slices.Contains(cfg.CorsOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CorsOrigins
		corsCfg.AllowCredentials = true
	}

	return cors.New(corsCfg)
}
