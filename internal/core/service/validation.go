package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/contentdesk/cms/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// image_mime accepts the upload types listed in domain.AllowedMimeType.
	if err := v.RegisterValidation("image_mime", func(fl validator.FieldLevel) bool {
		return domain.AllowedMimeType(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Rules checked after access has been granted, so callers without
// permission see the denial before any payload error.
type postRules struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"  validate:"required"`
	Status  string `json:"status"  validate:"required,oneof=draft published"`
}

type postPatchRules struct {
	Title   *string `json:"title"   validate:"omitnil,min=1"`
	Content *string `json:"content" validate:"omitnil,min=1"`
	Status  *string `json:"status"  validate:"omitnil,oneof=draft published"`
}

type mediaRules struct {
	Alt      string `json:"alt"      validate:"required"`
	Filename string `json:"filename" validate:"required"`
	MimeType string `json:"mimeType" validate:"required,image_mime"`
	Filesize int64  `json:"filesize" validate:"gt=0"`
}

type altRules struct {
	Alt string `json:"alt" validate:"required"`
}

type userPatchRules struct {
	Name  *string `json:"name"  validate:"omitnil,min=1,max=120"`
	Email *string `json:"email" validate:"omitnil,email"`
	Role  *string `json:"role"  validate:"omitnil,oneof=admin writer user"`
}

type registerRules struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// validateStruct runs the tag rules of s. Rule failures wrap
// domain.ErrValidation.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, ruleMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func ruleMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		if fe.Param() == "1" {
			return field + " cannot be empty"
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "image_mime":
		return fmt.Sprintf("unsupported mime type %q", fe.Value())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
