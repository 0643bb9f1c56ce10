package handler

import (
	"errors"

	problem "github.com/ml-registry/model-registry/pkg/registry/helpers/problem"
	"github.com/ml-registry/model-registry/pkg/registry/services"
)

const modelNotFound = "Model not found"

// toProblem maps domain errors onto problem responses. Unknown errors are
// returned unchanged and rendered as 500 by the error hook.
func toProblem(err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateName):
		return problem.NewConflict(err.Error(), problem.InvalidParam{Name: "name", Reason: "already in use"})
	case errors.Is(err, services.ErrDuplicateVersion):
		return problem.NewConflict(err.Error(), problem.InvalidParam{Name: "version", Reason: "already registered for this model"})
	case errors.Is(err, services.ErrInvalidTransition):
		return problem.NewBadRequest(err.Error(), problem.InvalidParam{Name: "status", Reason: "transition not allowed"})
	case errors.Is(err, services.ErrModelNotFound):
		return problem.NewNotFound(modelNotFound)
	default:
		return err
	}
}
