package repositories

import (
	"context"

	"github.com/ml-registry/model-registry/pkg/registry/models"
	"gorm.io/gorm"
)

// StatsRepository provides read-only aggregates over the model table.
type StatsRepository interface {
	CountModels(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByFramework(ctx context.Context) (map[string]int64, error)
	RecentModels(ctx context.Context, limit int) ([]models.Model, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

type labelCount struct {
	Label string
	Total int64
}

func (r *statsRepository) CountModels(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Model{}).Count(&total).Error
	return total, err
}

func (r *statsRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "status")
}

func (r *statsRepository) CountByFramework(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "framework")
}

// countBy groups models on column. Only values present in the data appear.
func (r *statsRepository) countBy(ctx context.Context, column string) (map[string]int64, error) {
	var rows []labelCount
	err := r.db.WithContext(ctx).
		Model(&models.Model{}).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Total
	}
	return out, nil
}

func (r *statsRepository) RecentModels(ctx context.Context, limit int) ([]models.Model, error) {
	var out []models.Model
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
