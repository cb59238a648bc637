package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sefazor/eventhub-backend/pkg/bcrypt"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("supported_image", validateImageType)
	v.RegisterValidation("bcrypt_len", validatePasswordBytes)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// Message turns a validation error into a short, client facing sentence.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "supported_image":
			parts = append(parts, fmt.Sprintf("%s is not a supported image type", fe.Field()))
		case "bcrypt_len":
			parts = append(parts, fmt.Sprintf("%s must be at most %d bytes", fe.Field(), bcrypt.MaxPasswordBytes))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}

// Desteklenen resim formatlarını kontrol et
func validateImageType(fl validator.FieldLevel) bool {
	mimeType := fl.Field().String()
	supportedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return supportedTypes[mimeType]
}

// validatePasswordBytes bounds passwords by bytes; max counts runes.
func validatePasswordBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= bcrypt.MaxPasswordBytes
}
