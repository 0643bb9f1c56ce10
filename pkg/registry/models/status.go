package models

import (
	"database/sql/driver"
	"fmt"
)

// DeploymentStatus is the position of a model in its release lifecycle.
type DeploymentStatus string

const (
	StatusDevelopment DeploymentStatus = "development"
	StatusStaging     DeploymentStatus = "staging"
	StatusProduction  DeploymentStatus = "production"
	StatusArchived    DeploymentStatus = "archived"
)

// DeploymentStatuses lists every status in lifecycle order.
var DeploymentStatuses = []DeploymentStatus{
	StatusDevelopment,
	StatusStaging,
	StatusProduction,
	StatusArchived,
}

// statusTransitions is the directed graph of legal status changes.
// A status never appears in its own list.
var statusTransitions = map[DeploymentStatus][]DeploymentStatus{
	StatusDevelopment: {StatusStaging, StatusArchived},
	StatusStaging:     {StatusProduction, StatusDevelopment, StatusArchived},
	StatusProduction:  {StatusStaging, StatusArchived},
	StatusArchived:    {StatusDevelopment},
}

func (s DeploymentStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s DeploymentStatus) AllowedTransitions() []DeploymentStatus {
	next := statusTransitions[s]
	out := make([]DeploymentStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s DeploymentStatus) CanTransitionTo(next DeploymentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseDeploymentStatus(v string) (DeploymentStatus, error) {
	s := DeploymentStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid deployment status %q", v)
	}
	return s, nil
}

func (s DeploymentStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid deployment status %q", string(s))
	}
	return string(s), nil
}

func (s *DeploymentStatus) Scan(value interface{}) error {
	raw, err := scanString(value)
	if err != nil {
		return fmt.Errorf("scan deployment status: %w", err)
	}
	parsed, err := ParseDeploymentStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Framework is the ML framework a model was built with.
type Framework string

const (
	FrameworkSklearn    Framework = "sklearn"
	FrameworkTensorflow Framework = "tensorflow"
	FrameworkPytorch    Framework = "pytorch"
	FrameworkXGBoost    Framework = "xgboost"
	FrameworkLightGBM   Framework = "lightgbm"
	FrameworkONNX       Framework = "onnx"
	FrameworkOther      Framework = "other"
)

var Frameworks = []Framework{
	FrameworkSklearn,
	FrameworkTensorflow,
	FrameworkPytorch,
	FrameworkXGBoost,
	FrameworkLightGBM,
	FrameworkONNX,
	FrameworkOther,
}

func (f Framework) Valid() bool {
	for _, known := range Frameworks {
		if f == known {
			return true
		}
	}
	return false
}

func ParseFramework(v string) (Framework, error) {
	f := Framework(v)
	if !f.Valid() {
		return "", fmt.Errorf("invalid framework %q", v)
	}
	return f, nil
}

func (f Framework) Value() (driver.Value, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid framework %q", string(f))
	}
	return string(f), nil
}

func (f *Framework) Scan(value interface{}) error {
	raw, err := scanString(value)
	if err != nil {
		return fmt.Errorf("scan framework: %w", err)
	}
	parsed, err := ParseFramework(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func scanString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", value)
	}
}
