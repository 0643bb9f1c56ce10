package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ml-registry/model-registry/pkg/registry/models"
)

// SystemController serves the unversioned service endpoints.
type SystemController struct {
	AppName   string
	Version   string
	APIPrefix string
}

func NewSystemController(appName, version, apiPrefix string) *SystemController {
	return &SystemController{AppName: appName, Version: version, APIPrefix: apiPrefix}
}

// Root handles GET /
func (c *SystemController) Root(ctx *gin.Context) (*models.RootResponse, error) {
	return &models.RootResponse{
		Name:    c.AppName,
		Version: c.Version,
		Docs:    c.APIPrefix + "/openapi.json",
		Health:  "/health",
	}, nil
}

// Health handles GET /health
func (c *SystemController) Health(ctx *gin.Context) (*models.HealthResponse, error) {
	return &models.HealthResponse{Status: "healthy", Version: c.Version}, nil
}
