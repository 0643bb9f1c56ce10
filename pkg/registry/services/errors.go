package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ml-registry/model-registry/pkg/registry/models"
)

var (
	ErrDuplicateName     = errors.New("duplicate model name")
	ErrDuplicateVersion  = errors.New("duplicate model version")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrModelNotFound     = errors.New("model not found")
)

type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("Model with name '%s' already exists", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

type DuplicateVersionError struct {
	Version string
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("Version %s already exists for this model", e.Version)
}

func (e *DuplicateVersionError) Is(target error) bool { return target == ErrDuplicateVersion }

type InvalidTransitionError struct {
	From models.DeploymentStatus
	To   models.DeploymentStatus
}

func (e *InvalidTransitionError) Error() string {
	allowed := e.From.AllowedTransitions()
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("Invalid status transition from %s to %s (allowed: %s)",
		e.From, e.To, strings.Join(names, ", "))
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }
