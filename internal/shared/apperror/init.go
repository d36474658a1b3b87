package apperror

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init wires json field names and custom rules into gin's validator engine.
// Request DTOs rely on the custom rules, so callers must treat an error as fatal.
func Init() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		return fmt.Errorf("register isodate validation: %w", err)
	}
	return nil
}

// validateISODate accepts a calendar date (2006-01-02) or a full RFC3339 timestamp.
func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if _, err := time.Parse(time.DateOnly, value); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}
