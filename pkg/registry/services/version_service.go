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

type VersionService struct {
	repo repositories.ModelRepository
	log  *zap.Logger
}

func NewVersionService(repo repositories.ModelRepository, logger *zap.Logger) *VersionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VersionService{repo: repo, log: logger.Named("versions")}
}

// ListVersions returns the versions of a model, newest first.
func (s *VersionService) ListVersions(ctx context.Context, modelID string) ([]models.ModelVersion, error) {
	versions, err := s.repo.ListVersions(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	return versions, nil
}

// CreateVersion records a new version and makes it the model's current
// version. Non-empty metrics replace the model's metrics wholesale.
func (s *VersionService) CreateVersion(ctx context.Context, modelID string, spec models.VersionSpec) (*models.ModelVersion, error) {
	existing, err := s.repo.GetVersion(ctx, modelID, spec.Version)
	if err != nil {
		return nil, fmt.Errorf("lookup version: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateVersionError{Version: spec.Version}
	}

	v := &models.ModelVersion{
		ID:        uuid.NewString(),
		ModelID:   modelID,
		Version:   spec.Version,
		Metrics:   datatypes.NewJSONType(spec.Metrics),
		Changelog: spec.Changelog,
	}

	err = s.repo.Transaction(ctx, func(tx repositories.ModelRepository) error {
		parent, err := tx.GetModelByID(ctx, modelID)
		if err != nil {
			return err
		}
		if parent == nil {
			return ErrModelNotFound
		}
		if err := tx.SaveVersion(ctx, v); err != nil {
			return err
		}

		version := spec.Version
		parent.CurrentVersion = &version
		if len(spec.Metrics) > 0 {
			parent.SetMetrics(spec.Metrics)
		}
		return tx.UpdateModel(ctx, parent)
	})
	switch {
	case errors.Is(err, repositories.ErrDuplicateKey):
		return nil, &DuplicateVersionError{Version: spec.Version}
	case errors.Is(err, repositories.ErrForeignKey), errors.Is(err, repositories.ErrNotFound):
		return nil, ErrModelNotFound
	case errors.Is(err, ErrModelNotFound):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("create version: %w", err)
	}

	s.log.Info("model version created",
		zap.String("model_id", modelID),
		zap.String("version", v.Version),
	)
	return v, nil
}
