package registry

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/loopfz/gadgeto/tonic"
	problem "github.com/ml-registry/model-registry/pkg/registry/helpers/problem"
	"github.com/ml-registry/model-registry/pkg/registry/models"
)

const bindErrorKey = "registry.bind_error"

var (
	errorHookOnce sync.Once
	validatorOnce sync.Once

	errBodyRequired = errors.New("request body is required")
)

// SetupErrorHook installs the tonic hooks and binding validators. It is safe
// to call more than once.
func SetupErrorHook() {
	RegisterValidators()
	errorHookOnce.Do(func() {
		tonic.SetBindHook(bindHook)
		tonic.SetErrorHook(errorHook)
	})
}

// RegisterValidators adds the registry's binding tags to gin's validator.
func RegisterValidators() {
	validatorOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = models.RegisterValidations(v)
		}
	})
}

// bindHook decodes JSON bodies. Unlike the tonic default it rejects an empty
// body on writes and keeps the original error so the error hook can report
// the offending fields.
func bindHook(c *gin.Context, i interface{}) error {
	switch c.Request.Method {
	case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
		return nil
	}
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		c.Set(bindErrorKey, errBodyRequired)
		return errBodyRequired
	}
	if err := c.ShouldBindWith(i, binding.JSON); err != nil {
		if errors.Is(err, io.EOF) {
			err = errBodyRequired
		}
		c.Set(bindErrorKey, err)
		return err
	}
	return nil
}

func errorHook(c *gin.Context, err error) (int, interface{}) {
	// 1) Bind/validate errors → 422 with invalidParams
	var be tonic.BindError
	if errors.As(err, &be) || isValidationErr(err) {
		cause := err
		if stored, ok := c.Get(bindErrorKey); ok {
			if storedErr, ok := stored.(error); ok {
				cause = storedErr
			}
		}
		apiErr := problem.NewUnprocessable("Invalid input", invalidParamsFromBinding(cause)...)
		c.Header("Content-Type", problem.ContentType)
		return apiErr.Status, apiErr
	}

	// 2) APIError → pass-through
	var apiErr problem.APIError
	if errors.As(err, &apiErr) {
		c.Header("Content-Type", problem.ContentType)
		return apiErr.Status, apiErr
	}

	// 3) Everything else → 500
	_ = c.Error(err)
	internal := problem.NewInternalServerError("An unexpected error occurred")
	c.Header("Content-Type", problem.ContentType)
	return internal.Status, internal
}

func isValidationErr(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func invalidParamsFromBinding(err error) []problem.InvalidParam {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []problem.InvalidParam{{Name: "body", Reason: err.Error()}}
	}

	out := make([]problem.InvalidParam, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, problem.InvalidParam{
			Name:   fe.Field(),
			Reason: humanReason(fe),
		})
	}
	return out
}

func humanReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "modelname":
		return "may only contain letters, numbers, hyphens, underscores and spaces"
	case "modelversion":
		return "must be a semantic version like 1.0.0"
	default:
		return fe.Error()
	}
}
