package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// messages name the full key path, e.g. quiz.timer_seconds
	if err := validate.RegisterTranslation("required_if", trans, func(ut ut.Translator) error {
		return ut.Add("required_if", "{0} is required for the {1} storage driver", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		driver := fe.Param()
		if _, value, ok := strings.Cut(driver, " "); ok {
			driver = value
		}
		t, _ := ut.T("required_if", keyPath(fe), driver)
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register required_if translation: %w", err)
	}
	for _, tag := range []string{"min", "max", "gt", "lt", "oneof"} {
		if err := validate.RegisterTranslation(tag, trans, registerKeyed(tag), translateKeyed(tag)); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return validate, trans, nil
}

var keyedMessages = map[string]string{
	"min":   "{0} must be {1} or greater",
	"max":   "{0} must be {1} or less",
	"gt":    "{0} must be greater than {1}",
	"lt":    "{0} must be less than {1}",
	"oneof": "{0} must be one of [{1}]",
}

func registerKeyed(tag string) validator.RegisterTranslationsFunc {
	return func(ut ut.Translator) error {
		return ut.Add(tag, keyedMessages[tag], true)
	}
}

func translateKeyed(tag string) validator.TranslationFunc {
	return func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, keyPath(fe), fe.Param())
		return t
	}
}

func keyPath(fe validator.FieldError) string {
	return strings.TrimPrefix(fe.Namespace(), "Config.")
}
