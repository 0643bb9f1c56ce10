package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/ml-registry/model-registry/pkg/registry/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ModelRepository provides access to models and their versions.
type ModelRepository interface {
	ListModels(ctx context.Context, filter models.ModelFilter) ([]models.Model, int64, error)
	GetModelByID(ctx context.Context, id string) (*models.Model, error)
	GetModelByName(ctx context.Context, name string) (*models.Model, error)
	SaveModel(ctx context.Context, model *models.Model) error
	UpdateModel(ctx context.Context, model *models.Model) error
	DeleteModel(ctx context.Context, id string) (bool, error)

	ListVersions(ctx context.Context, modelID string) ([]models.ModelVersion, error)
	GetVersion(ctx context.Context, modelID, version string) (*models.ModelVersion, error)
	SaveVersion(ctx context.Context, version *models.ModelVersion) error

	// Transaction runs fn with a repository bound to a single transaction.
	// Any error returned by fn rolls the transaction back.
	Transaction(ctx context.Context, fn func(repo ModelRepository) error) error
}

type modelRepository struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) ModelRepository {
	return &modelRepository{db: db}
}

func (r *modelRepository) ListModels(ctx context.Context, filter models.ModelFilter) ([]models.Model, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Model{}).
		Scopes(filterScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = models.DefaultListLimit
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	var out []models.Model
	if err := r.db.WithContext(ctx).
		Scopes(filterScope(filter)).
		Order("updated_at DESC").
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func filterScope(filter models.ModelFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Framework != nil {
			db = db.Where("framework = ?", string(*filter.Framework))
		}
		if filter.Status != nil {
			db = db.Where("status = ?", string(*filter.Status))
		}
		if filter.Search != "" {
			pattern := "%" + escapeLike(filter.Search) + "%"
			db = db.Where(
				`LOWER(name) LIKE LOWER(?) ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE LOWER(?) ESCAPE '\'`,
				pattern, pattern,
			)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *modelRepository) GetModelByID(ctx context.Context, id string) (*models.Model, error) {
	return r.firstModel(ctx, "id = ?", id)
}

func (r *modelRepository) GetModelByName(ctx context.Context, name string) (*models.Model, error) {
	return r.firstModel(ctx, "name = ?", name)
}

func (r *modelRepository) firstModel(ctx context.Context, query string, arg string) (*models.Model, error) {
	var m models.Model
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *modelRepository) SaveModel(ctx context.Context, model *models.Model) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error)
}

// UpdateModel writes every column of model except id and created_at and
// refreshes updated_at. ErrNotFound is returned when no row matched.
func (r *modelRepository) UpdateModel(ctx context.Context, model *models.Model) error {
	res := r.db.WithContext(ctx).
		Model(model).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(model)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteModel removes the model and its versions. It reports false when the
// model did not exist.
func (r *modelRepository) DeleteModel(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("model_id = ?", id).Delete(&models.ModelVersion{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Model{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (r *modelRepository) ListVersions(ctx context.Context, modelID string) ([]models.ModelVersion, error) {
	var out []models.ModelVersion
	err := r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *modelRepository) GetVersion(ctx context.Context, modelID, version string) (*models.ModelVersion, error) {
	var v models.ModelVersion
	err := r.db.WithContext(ctx).
		Where("model_id = ? AND version = ?", modelID, version).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *modelRepository) SaveVersion(ctx context.Context, version *models.ModelVersion) error {
	return translateError(r.db.WithContext(ctx).Create(version).Error)
}

func (r *modelRepository) Transaction(ctx context.Context, fn func(repo ModelRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&modelRepository{db: tx})
	})
}
