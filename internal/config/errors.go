package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration indicates an invalid or conflicting configuration value
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigError represents an error in the application configuration.
// It includes the parameter name, its value if available, and the underlying error.
type ConfigError struct {
	Parameter string
	Value     any
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("configuration error for %s = %v: %v", e.Parameter, e.Value, e.Err)
	}

	return fmt.Sprintf("configuration error for %s: %v", e.Parameter, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func invalid(parameter string, value any, format string, args ...any) *ConfigError {
	return &ConfigError{
		Parameter: parameter,
		Value:     value,
		Err:       fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...)),
	}
}
