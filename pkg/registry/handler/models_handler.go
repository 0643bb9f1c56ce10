package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	problem "github.com/ml-registry/model-registry/pkg/registry/helpers/problem"
	"github.com/ml-registry/model-registry/pkg/registry/helpers/util"
	"github.com/ml-registry/model-registry/pkg/registry/models"
	"github.com/ml-registry/model-registry/pkg/registry/services"
)

// ModelsAPIController binds HTTP requests to the model and version services
type ModelsAPIController struct {
	Models   *services.ModelService
	Versions *services.VersionService
}

// NewModelsAPIController creates a new controller
func NewModelsAPIController(m *services.ModelService, v *services.VersionService) *ModelsAPIController {
	return &ModelsAPIController{Models: m, Versions: v}
}

// ListModels handles GET /models
func (c *ModelsAPIController) ListModels(ctx *gin.Context, p *models.ListModelsParams) (*models.ModelListResponse, error) {
	filter, err := toModelFilter(p)
	if err != nil {
		return nil, err
	}

	items, total, err := c.Models.ListModels(ctx.Request.Context(), filter)
	if err != nil {
		return nil, err
	}
	util.SetTotalCountHeader(ctx.Header, total)

	return &models.ModelListResponse{
		Items: util.ToModelResponses(items),
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	}, nil
}

func toModelFilter(p *models.ListModelsParams) (models.ModelFilter, error) {
	var invalid []problem.InvalidParam
	if p.Skip < 0 {
		invalid = append(invalid, problem.InvalidParam{Name: "skip", Reason: "must be greater than or equal to 0"})
	}
	if p.Limit < 1 || p.Limit > models.MaxListLimit {
		invalid = append(invalid, problem.InvalidParam{Name: "limit", Reason: fmt.Sprintf("must be between 1 and %d", models.MaxListLimit)})
	}

	filter := models.ModelFilter{Skip: p.Skip, Limit: p.Limit, Search: p.Search}
	if p.Framework != "" {
		fw, err := models.ParseFramework(p.Framework)
		if err != nil {
			invalid = append(invalid, problem.InvalidParam{Name: "framework", Reason: err.Error()})
		} else {
			filter.Framework = &fw
		}
	}
	if p.Status != "" {
		st, err := models.ParseDeploymentStatus(p.Status)
		if err != nil {
			invalid = append(invalid, problem.InvalidParam{Name: "status", Reason: err.Error()})
		} else {
			filter.Status = &st
		}
	}

	if len(invalid) > 0 {
		return models.ModelFilter{}, problem.NewUnprocessable("Invalid query parameters", invalid...)
	}
	return filter, nil
}

// CreateModel handles POST /models
func (c *ModelsAPIController) CreateModel(ctx *gin.Context, body *models.ModelCreate) (*models.ModelResponse, error) {
	// an omitted version defaults to 1.0.0, an explicit null registers no version
	version := models.DefaultVersion
	switch {
	case body.Version != nil:
		version = *body.Version
	case body.Has("version"):
		version = ""
	}

	created, err := c.Models.CreateModel(ctx.Request.Context(), models.ModelSpec{
		Name:        body.Name,
		Description: body.Description,
		Framework:   models.Framework(body.Framework),
		Tags:        body.Tags,
		Version:     version,
		Metrics:     body.Metrics,
		Author:      body.Author,
	})
	if err != nil {
		return nil, toProblem(err)
	}
	resp := util.ToModelResponse(created)
	return &resp, nil
}

// RetrieveModel handles GET /models/:id
func (c *ModelsAPIController) RetrieveModel(ctx *gin.Context, params *models.ModelParams) (*models.ModelResponse, error) {
	m, err := c.Models.GetModelByID(ctx.Request.Context(), params.Id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, problem.NewNotFound(modelNotFound)
	}
	resp := util.ToModelResponse(m)
	return &resp, nil
}

// UpdateModel handles PUT /models/:id
func (c *ModelsAPIController) UpdateModel(ctx *gin.Context, body *models.UpdateModelInput) (*models.ModelResponse, error) {
	if body.Has("name") && body.Name == nil {
		return nil, problem.NewUnprocessable("Invalid input", problem.InvalidParam{Name: "name", Reason: "may not be null"})
	}

	patch := models.ModelPatch{
		Name:             body.Name,
		Description:      body.Description,
		ClearDescription: body.Has("description") && body.Description == nil,
		Tags:             body.Tags,
	}
	if body.Has("tags") && body.Tags == nil {
		patch.Tags = &[]string{}
	}

	updated, err := c.Models.UpdateModel(ctx.Request.Context(), body.Id, patch)
	if err != nil {
		return nil, toProblem(err)
	}
	if updated == nil {
		return nil, problem.NewNotFound(modelNotFound)
	}
	resp := util.ToModelResponse(updated)
	return &resp, nil
}

// DeleteModel handles DELETE /models/:id
func (c *ModelsAPIController) DeleteModel(ctx *gin.Context, params *models.ModelParams) error {
	deleted, err := c.Models.DeleteModel(ctx.Request.Context(), params.Id)
	if err != nil {
		return err
	}
	if !deleted {
		return problem.NewNotFound(modelNotFound)
	}
	return nil
}

// DeployModel handles POST /models/:id/deploy
func (c *ModelsAPIController) DeployModel(ctx *gin.Context, body *models.DeploymentInput) (*models.ModelResponse, error) {
	status, err := models.ParseDeploymentStatus(body.Status)
	if err != nil {
		return nil, problem.NewUnprocessable("Invalid input", problem.InvalidParam{Name: "status", Reason: err.Error()})
	}

	updated, err := c.Models.UpdateDeploymentStatus(ctx.Request.Context(), body.Id, status)
	if err != nil {
		return nil, toProblem(err)
	}
	if updated == nil {
		return nil, problem.NewNotFound(modelNotFound)
	}
	resp := util.ToModelResponse(updated)
	return &resp, nil
}

// ListVersions handles GET /models/:id/versions
func (c *ModelsAPIController) ListVersions(ctx *gin.Context, params *models.ModelParams) ([]models.ModelVersionResponse, error) {
	if err := c.requireModel(ctx, params.Id); err != nil {
		return nil, err
	}
	versions, err := c.Versions.ListVersions(ctx.Request.Context(), params.Id)
	if err != nil {
		return nil, err
	}
	return util.ToVersionResponses(versions), nil
}

// CreateVersion handles POST /models/:id/versions
func (c *ModelsAPIController) CreateVersion(ctx *gin.Context, body *models.ModelVersionInput) (*models.ModelVersionResponse, error) {
	if err := c.requireModel(ctx, body.Id); err != nil {
		return nil, err
	}
	created, err := c.Versions.CreateVersion(ctx.Request.Context(), body.Id, models.VersionSpec{
		Version:   body.Version,
		Metrics:   body.Metrics,
		Changelog: body.Changelog,
	})
	if err != nil {
		return nil, toProblem(err)
	}
	resp := util.ToVersionResponse(created)
	return &resp, nil
}

func (c *ModelsAPIController) requireModel(ctx *gin.Context, id string) error {
	m, err := c.Models.GetModelByID(ctx.Request.Context(), id)
	if err != nil {
		return err
	}
	if m == nil {
		return problem.NewNotFound(modelNotFound)
	}
	return nil
}
