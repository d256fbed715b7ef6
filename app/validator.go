package wayfarer

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	"github.com/wayfarer-app/wayfarer/pkg/router"
)

var validate *validator.Validate
var trans ut.Translator

func init() {
	validate = validator.New()

	enLocale := en.New()
	uniTrans := ut.New(enLocale, enLocale)
	trans, _ = uniTrans.GetTranslator("en")
	if err := entrans.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}

	// lowercase first letter of the field in messages
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.ToLower(field.Name[:1]) + field.Name[1:]
	})

	validate.RegisterValidation("port", func(fl validator.FieldLevel) bool {
		port, ok := fl.Field().Interface().(int)
		if !ok {
			return false
		}
		return port > 0 && port <= 65535
	})
}

// FormatValidationErrors renders the translated messages of a
// validator.ValidationErrors, one per line.
func FormatValidationErrors(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var sb strings.Builder
	for i, fe := range errs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fe.Translate(trans))
	}
	return sb.String()
}

// validatePayload checks a decoded request body and maps failures to a 400.
func validatePayload(v any) error {
	if err := validate.Struct(v); err != nil {
		return router.NewJsonError(http.StatusBadRequest, FormatValidationErrors(err))
	}
	return nil
}
