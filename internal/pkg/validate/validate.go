package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "macstock/internal/errors"
)

// v es la instancia compartida del validador. Es segura para uso concurrente
// y cachea la metadata de las estructuras, por eso se crea una sola vez.
var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()

	// Reportar los nombres de campo tal como viajan en el JSON, no como
	// se llaman en la struct de Go.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return val
}

// Struct valida los tags `validate` de la estructura y traduce la primera
// falla a un ValidationError con mensaje legible para el usuario.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperror.NewValidationError(mensaje(verrs[0]))
	}

	return apperror.NewValidationError("Payload inválido. Verifique el formato JSON.")
}

// mensaje construye el texto de error según el tag que falló.
func mensaje(fe validator.FieldError) string {
	campo := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo '%s' es requerido.", campo)
	case "gt":
		return fmt.Sprintf("El campo '%s' debe ser mayor que %s.", campo, fe.Param())
	case "min":
		return fmt.Sprintf("El campo '%s' debe tener al menos %s elementos o caracteres.", campo, fe.Param())
	case "oneof":
		return fmt.Sprintf("El campo '%s' debe ser uno de: %s.", campo, fe.Param())
	default:
		return fmt.Sprintf("El campo '%s' no es válido.", campo)
	}
}
