package validate

import (
	"github.com/go-playground/validator"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
)

// EchoValidator plugs go-playground/validator into echo's Bind/Validate
// pipeline. Validation failures surface as apperr.Validation so the error
// handler answers 400.
type EchoValidator struct {
	v *validator.Validate
}

func New() *EchoValidator {
	return &EchoValidator{v: validator.New()}
}

func (e *EchoValidator) Validate(i any) error {
	if err := e.v.Struct(i); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	return nil
}
