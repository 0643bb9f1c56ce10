package models

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
	DefaultVersion       = "1.0.0"
)

var versionRE = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ValidModelName reports whether name consists only of letters, digits,
// hyphens, underscores and spaces, with at least one letter or digit.
func ValidModelName(name string) bool {
	var hasAlnum bool
	for _, r := range name {
		switch {
		case r == '-' || r == '_' || r == ' ':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			hasAlnum = true
		default:
			return false
		}
	}
	return hasAlnum
}

// NormalizeModelName trims leading and trailing whitespace.
func NormalizeModelName(name string) string {
	return strings.TrimSpace(name)
}

// ValidVersion reports whether v has the MAJOR.MINOR.PATCH form.
func ValidVersion(v string) bool {
	return versionRE.MatchString(v)
}

// RegisterValidations adds the "modelname" and "modelversion" tags to v and
// makes it report fields by their JSON names.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("modelname", func(fl validator.FieldLevel) bool {
		return ValidModelName(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("modelversion", func(fl validator.FieldLevel) bool {
		return ValidVersion(fl.Field().String())
	})
}

// NewValidator returns a validator that checks the same binding tags as the
// HTTP layer.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	_ = RegisterValidations(v)
	return v
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.Split(f.Tag.Get("json"), ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
