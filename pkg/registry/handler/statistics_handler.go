package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ml-registry/model-registry/pkg/registry/helpers/util"
	"github.com/ml-registry/model-registry/pkg/registry/models"
	"github.com/ml-registry/model-registry/pkg/registry/services"
)

type StatisticsController struct {
	Service *services.StatsService
}

func NewStatisticsController(s *services.StatsService) *StatisticsController {
	return &StatisticsController{Service: s}
}

// GetDashboardStats handles GET /stats
func (c *StatisticsController) GetDashboardStats(ctx *gin.Context) (*models.DashboardStats, error) {
	stats, err := c.Service.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		return nil, err
	}
	return util.ToDashboardStats(stats), nil
}
