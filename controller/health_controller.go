package controller

import (
	"net/http"

	"github.com/saandeepkondury/py-trends-API/model"

	"github.com/gin-gonic/gin"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (ctrl *HealthController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", ctrl.healthCheck)
	router.HEAD("/health", ctrl.healthCheck)
}

// healthCheck always reports liveness, whatever the request carries.
func (ctrl *HealthController) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{OK: true})
}
