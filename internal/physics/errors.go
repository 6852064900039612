package physics

import (
	"errors"
	"fmt"
)

// Domain errors for world configuration and body management.
var (
	// ErrConfiguration is the umbrella for every configuration failure.
	ErrConfiguration = errors.New("physics: invalid configuration")

	// ErrInvalidBounds indicates world bounds with zero or negative extent.
	ErrInvalidBounds = errors.New("physics: world bounds must have positive extent")

	// ErrNonPositiveMass indicates a dynamic body registered with mass <= 0.
	ErrNonPositiveMass = errors.New("physics: dynamic body requires positive mass")

	// ErrInvalidShape indicates a collider shape with zero extent.
	ErrInvalidShape = errors.New("physics: collider shape has no extent")

	// ErrNoRigidBody indicates a constraint against a body without a rigid body.
	ErrNoRigidBody = errors.New("physics: body has no rigid body")

	// ErrInvalidHandle indicates an unknown or stale body handle.
	ErrInvalidHandle = errors.New("physics: invalid or stale body handle")

	// ErrOutOfRange indicates a parameter outside its valid range.
	ErrOutOfRange = errors.New("physics: parameter out of valid range")
)

// ConfigError wraps a configuration failure with the offending field.
// It matches both ErrConfiguration and the wrapped cause under errors.Is.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func configError(field string, value any, cause error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Wrapped: cause}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v", e.Wrapped, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfiguration, e.Wrapped}
}
