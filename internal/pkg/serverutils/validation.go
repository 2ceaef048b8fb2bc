package serverutils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest checks the `validate` tags of req and returns a 400
// AppError on failure.
func ValidateRequest(req interface{}) error {
	if err := getValidator().Struct(req); err != nil {
		return BadRequest("Invalid payload", err)
	}
	return nil
}
