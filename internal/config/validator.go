package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs the struct-tag validation and returns every violation in a
// single readable error.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field %q failed rule %q", e.Namespace(), e.Tag()))
		}
		return fmt.Errorf("config: validation failed:\n- %s", strings.Join(msgs, "\n- "))
	}
	return fmt.Errorf("config: validation failed: %w", err)
}
