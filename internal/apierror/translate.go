package apierror

import (
	"fmt"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// messages holds the validation messages per locale. Messages omit the field
// name; {0} is the rule parameter.
var messages = map[string]map[string]string{
	"en": {
		"required": "can't be blank",
		"min":      "is too short (minimum is {0})",
		"max":      "is too long (maximum is {0})",
		"len":      "is the wrong length (should be {0})",
		"gt":       "must be greater than {0}",
		"gte":      "must be greater than or equal to {0}",
		"lt":       "must be less than {0}",
		"lte":      "must be less than or equal to {0}",
		"oneof":    "is not included in the list",
		"email":    "is invalid",
	},
	"es": {
		"required": "no puede estar en blanco",
		"min":      "es demasiado corto (mínimo {0})",
		"max":      "es demasiado largo (máximo {0})",
		"len":      "no tiene la longitud correcta (debe ser {0})",
		"gt":       "debe ser mayor que {0}",
		"gte":      "debe ser mayor que o igual a {0}",
		"lt":       "debe ser menor que {0}",
		"lte":      "debe ser menor que o igual a {0}",
		"oneof":    "no está incluido en la lista",
		"email":    "no es válido",
	},
}

// NewTranslator returns the translator for locale and registers the locale's
// validation messages on v. Unknown locales fall back to English.
func NewTranslator(v *validator.Validate, locale string) (ut.Translator, error) {
	english := en.New()
	uni := ut.New(english, english, es.New())

	trans, found := uni.GetTranslator(locale)
	if !found {
		locale = "en"
	}
	table, ok := messages[locale]
	if !ok {
		table = messages["en"]
	}

	for tag, text := range table {
		tag, text := tag, text
		err := v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error {
				return t.Add(tag, text, true)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				msg, err := t.T(fe.Tag(), fe.Param())
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		)
		if err != nil {
			return nil, fmt.Errorf("register %s translation for %q: %w", locale, tag, err)
		}
	}
	return trans, nil
}
