package simulation

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned, wrapped in a *ConfigError, when a run is
// rejected before it starts.
var ErrInvalidConfiguration = errors.New("invalid simulation configuration")

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

func invalid(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
