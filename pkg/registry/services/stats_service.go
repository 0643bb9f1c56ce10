package services

import (
	"context"
	"fmt"

	"github.com/ml-registry/model-registry/pkg/registry/models"
	"github.com/ml-registry/model-registry/pkg/registry/repositories"
)

const recentModelsLimit = 5

// Stats is the service-level form of the dashboard statistics.
type Stats struct {
	TotalModels       int64
	ModelsByStatus    map[string]int64
	ModelsByFramework map[string]int64
	RecentModels      []models.Model
}

type StatsService struct {
	repo repositories.StatsRepository
}

func NewStatsService(repo repositories.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// GetDashboardStats recomputes the aggregates on every call.
func (s *StatsService) GetDashboardStats(ctx context.Context) (*Stats, error) {
	total, err := s.repo.CountModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("count models: %w", err)
	}
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	byFramework, err := s.repo.CountByFramework(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by framework: %w", err)
	}
	recent, err := s.repo.RecentModels(ctx, recentModelsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent models: %w", err)
	}

	return &Stats{
		TotalModels:       total,
		ModelsByStatus:    byStatus,
		ModelsByFramework: byFramework,
		RecentModels:      recent,
	}, nil
}
