package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator validates request payloads by their `validate` struct tags and
// translates failures into human-readable messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with English translations registered.
func New() (*Validator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{
		validate: validate,
		trans:    trans,
	}, nil
}

// Validate returns a field-to-message map of validation failures, or nil when
// the payload is valid.
func (v *Validator) Validate(payload any) map[string]string {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			fields[strings.ToLower(fieldError.Field())] = fieldError.Translate(v.trans)
		}
	} else {
		fields["payload"] = "invalid payload"
	}

	return fields
}
