package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// validate comprueba solo la forma del cuerpo (identificadores requeridos).
// Las reglas de negocio quedan en los casos de uso para conservar sus códigos de error.
var validate = validator.New()

// parseBody decodifica el JSON y lo valida. Un JSON roto devuelve errBadBody.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errBadBody
	}
	return validateStruct(out)
}

var errBadBody = errors.New("cuerpo inválido")

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace()+" "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(fields, ", "))
}

// handleBodyErr responde 400 INVALID_BODY o el código de validación correspondiente.
func handleBodyErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, errBadBody) {
		return badBody(c)
	}
	return writeError(c, err)
}
