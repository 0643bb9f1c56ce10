package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ml-registry/model-registry/pkg/registry/models"
	"github.com/ml-registry/model-registry/pkg/registry/repositories"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const initialVersionChangelog = "Initial version"

// ModelService implements model registration, lookup and lifecycle changes.
type ModelService struct {
	repo repositories.ModelRepository
	log  *zap.Logger
}

func NewModelService(repo repositories.ModelRepository, logger *zap.Logger) *ModelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelService{repo: repo, log: logger.Named("models")}
}

// ListModels returns one page of models matching filter and the size of the
// whole filtered set.
func (s *ModelService) ListModels(ctx context.Context, filter models.ModelFilter) ([]models.Model, int64, error) {
	items, total, err := s.repo.ListModels(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list models: %w", err)
	}
	return items, total, nil
}

// GetModelByID returns nil without error when the model does not exist.
func (s *ModelService) GetModelByID(ctx context.Context, id string) (*models.Model, error) {
	return s.repo.GetModelByID(ctx, id)
}

func (s *ModelService) GetModelByName(ctx context.Context, name string) (*models.Model, error) {
	return s.repo.GetModelByName(ctx, name)
}

// CreateModel registers a new model in development status. When spec carries
// a version, the initial ModelVersion is written in the same transaction.
func (s *ModelService) CreateModel(ctx context.Context, spec models.ModelSpec) (*models.Model, error) {
	name := models.NormalizeModelName(spec.Name)

	existing, err := s.repo.GetModelByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup model name: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateNameError{Name: name}
	}

	m := &models.Model{
		ID:          uuid.NewString(),
		Name:        name,
		Description: spec.Description,
		Framework:   spec.Framework,
		Status:      models.StatusDevelopment,
		Author:      spec.Author,
	}
	m.SetTags(spec.Tags)
	m.SetMetrics(spec.Metrics)
	if spec.Version != "" {
		version := spec.Version
		m.CurrentVersion = &version
	}

	err = s.repo.Transaction(ctx, func(tx repositories.ModelRepository) error {
		if err := tx.SaveModel(ctx, m); err != nil {
			return err
		}
		if spec.Version == "" {
			return nil
		}
		changelog := initialVersionChangelog
		return tx.SaveVersion(ctx, &models.ModelVersion{
			ID:        uuid.NewString(),
			ModelID:   m.ID,
			Version:   spec.Version,
			Metrics:   datatypes.NewJSONType(spec.Metrics),
			Changelog: &changelog,
		})
	})
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return nil, &DuplicateNameError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("create model: %w", err)
	}

	s.log.Info("model registered",
		zap.String("model_id", m.ID),
		zap.String("name", m.Name),
		zap.String("framework", string(m.Framework)),
	)
	return m, nil
}

// UpdateModel applies the non-nil fields of patch. It returns nil when the
// model does not exist.
func (s *ModelService) UpdateModel(ctx context.Context, id string, patch models.ModelPatch) (*models.Model, error) {
	m, err := s.repo.GetModelByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}

	if patch.Name != nil {
		name := models.NormalizeModelName(*patch.Name)
		if name != m.Name {
			existing, err := s.repo.GetModelByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("lookup model name: %w", err)
			}
			if existing != nil && existing.ID != m.ID {
				return nil, &DuplicateNameError{Name: name}
			}
		}
		m.Name = name
	}
	if patch.ClearDescription {
		m.Description = nil
	} else if patch.Description != nil {
		m.Description = patch.Description
	}
	if patch.Tags != nil {
		m.SetTags(*patch.Tags)
	}

	err = s.repo.UpdateModel(ctx, m)
	switch {
	case errors.Is(err, repositories.ErrDuplicateKey):
		return nil, &DuplicateNameError{Name: m.Name}
	case errors.Is(err, repositories.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("update model: %w", err)
	}
	return m, nil
}

// DeleteModel removes a model and all of its versions.
func (s *ModelService) DeleteModel(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.DeleteModel(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete model: %w", err)
	}
	if deleted {
		s.log.Info("model deleted", zap.String("model_id", id))
	}
	return deleted, nil
}

// UpdateDeploymentStatus moves a model to status when the transition table
// allows it. It returns nil when the model does not exist.
func (s *ModelService) UpdateDeploymentStatus(ctx context.Context, id string, status models.DeploymentStatus) (*models.Model, error) {
	m, err := s.repo.GetModelByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}

	from := m.Status
	if !from.CanTransitionTo(status) {
		return nil, &InvalidTransitionError{From: from, To: status}
	}

	m.Status = status
	err = s.repo.UpdateModel(ctx, m)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update deployment status: %w", err)
	}

	s.log.Info("deployment status changed",
		zap.String("model_id", m.ID),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)
	return m, nil
}
