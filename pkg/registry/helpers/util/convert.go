package util

import (
	"strconv"

	"github.com/ml-registry/model-registry/pkg/registry/models"
	"github.com/ml-registry/model-registry/pkg/registry/services"
)

func ToModelResponse(m *models.Model) models.ModelResponse {
	return models.ModelResponse{
		Id:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		Framework:      string(m.Framework),
		Tags:           m.TagList(),
		Status:         string(m.Status),
		CurrentVersion: m.CurrentVersion,
		Metrics:        m.MetricsData(),
		Author:         m.Author,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToModelResponses(items []models.Model) []models.ModelResponse {
	out := make([]models.ModelResponse, 0, len(items))
	for i := range items {
		out = append(out, ToModelResponse(&items[i]))
	}
	return out
}

func ToVersionResponse(v *models.ModelVersion) models.ModelVersionResponse {
	return models.ModelVersionResponse{
		Id:        v.ID,
		ModelId:   v.ModelID,
		Version:   v.Version,
		Metrics:   v.MetricsData(),
		Changelog: v.Changelog,
		CreatedAt: v.CreatedAt,
	}
}

func ToVersionResponses(items []models.ModelVersion) []models.ModelVersionResponse {
	out := make([]models.ModelVersionResponse, 0, len(items))
	for i := range items {
		out = append(out, ToVersionResponse(&items[i]))
	}
	return out
}

func ToDashboardStats(s *services.Stats) *models.DashboardStats {
	byStatus := s.ModelsByStatus
	if byStatus == nil {
		byStatus = map[string]int64{}
	}
	byFramework := s.ModelsByFramework
	if byFramework == nil {
		byFramework = map[string]int64{}
	}
	return &models.DashboardStats{
		TotalModels:       s.TotalModels,
		ModelsByStatus:    byStatus,
		ModelsByFramework: byFramework,
		RecentModels:      ToModelResponses(s.RecentModels),
	}
}

// SetTotalCountHeader exposes the size of the unpaginated result set.
func SetTotalCountHeader(setHeader func(key, value string), total int64) {
	setHeader("X-Total-Count", strconv.FormatInt(total, 10))
}
