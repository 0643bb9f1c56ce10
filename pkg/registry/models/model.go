package models

import (
	"time"

	"gorm.io/datatypes"
)

// Metrics maps a metric name (accuracy, f1, ...) to its value.
type Metrics map[string]float64

// Model is a registered ML model.
type Model struct {
	ID             string                      `gorm:"column:id;primaryKey;size:36"`
	Name           string                      `gorm:"column:name;size:100;not null;uniqueIndex:idx_ml_models_name"`
	Description    *string                     `gorm:"column:description;type:text"`
	Framework      Framework                   `gorm:"column:framework;size:20;not null;index"`
	Status         DeploymentStatus            `gorm:"column:status;size:20;not null;index"`
	CurrentVersion *string                     `gorm:"column:current_version;size:20"`
	Metrics        datatypes.JSONType[Metrics] `gorm:"column:metrics"`
	Tags           datatypes.JSONSlice[string] `gorm:"column:tags"`
	Author         *string                     `gorm:"column:author;size:100"`
	CreatedAt      time.Time                   `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time                   `gorm:"column:updated_at;not null;index"`
	Versions       []ModelVersion              `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
}

func (Model) TableName() string { return "ml_models" }

// ModelVersion is an immutable snapshot of a model's metrics at a version.
type ModelVersion struct {
	ID        string                      `gorm:"column:id;primaryKey;size:36"`
	ModelID   string                      `gorm:"column:model_id;size:36;not null;uniqueIndex:idx_model_versions_model_version,priority:1"`
	Version   string                      `gorm:"column:version;size:20;not null;uniqueIndex:idx_model_versions_model_version,priority:2"`
	Metrics   datatypes.JSONType[Metrics] `gorm:"column:metrics"`
	Changelog *string                     `gorm:"column:changelog;type:text"`
	CreatedAt time.Time                   `gorm:"column:created_at;not null;index"`
}

func (ModelVersion) TableName() string { return "model_versions" }

// MetricsData returns the model metrics, nil when none were recorded.
func (m *Model) MetricsData() Metrics {
	return m.Metrics.Data()
}

func (m *Model) SetMetrics(metrics Metrics) {
	m.Metrics = datatypes.NewJSONType(metrics)
}

func (m *Model) TagList() []string {
	if m.Tags == nil {
		return []string{}
	}
	return []string(m.Tags)
}

func (m *Model) SetTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	m.Tags = datatypes.NewJSONSlice(tags)
}

func (v *ModelVersion) MetricsData() Metrics {
	return v.Metrics.Data()
}
