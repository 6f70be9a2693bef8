package demand

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by ConfigError.
var (
	// ErrOutOfRange indicates a numeric parameter outside its allowed interval.
	ErrOutOfRange = errors.New("demand: parameter out of range")

	// ErrUnknownOption indicates an unrecognized categorical value.
	ErrUnknownOption = errors.New("demand: unknown option")

	// ErrDuplicate indicates a repeated factor instance, dependency or column name.
	ErrDuplicate = errors.New("demand: duplicate")

	// ErrForwardReference indicates an edge to a factor that is not strictly earlier.
	ErrForwardReference = errors.New("demand: dependency is not strictly earlier")

	// ErrNotApplied indicates a dependency read before it was applied,
	// or an activation on a row that was not reset.
	ErrNotApplied = errors.New("demand: factor state mismatch")

	// ErrShape indicates a series whose length differs from the date axis.
	ErrShape = errors.New("demand: series length mismatch")

	// ErrParamType indicates a parameter of the wrong type or an unknown parameter name.
	ErrParamType = errors.New("demand: bad parameter")
)

// ConfigError reports an invalid construction parameter or a violated
// dependency invariant. It is the only error kind produced by this package.
type ConfigError struct {
	Factor string // factor name or kind; empty for axis/graph level errors
	Param  string // offending parameter, if any
	Msg    string
	Err    error // one of the sentinels above
}

func (e *ConfigError) Error() string {
	prefix := "config"
	if e.Factor != "" {
		prefix = e.Factor
	}
	if e.Param != "" {
		prefix += "." + e.Param
	}
	return fmt.Sprintf("%s: %s", prefix, e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// configErrorf builds a *ConfigError wrapping cause.
func configErrorf(cause error, factor, param, format string, args ...any) *ConfigError {
	return &ConfigError{
		Factor: factor,
		Param:  param,
		Msg:    fmt.Sprintf(format, args...),
		Err:    cause,
	}
}

// NewConfigError is configErrorf for callers outside this package
// (parameter registries in demand/dataset).
func NewConfigError(cause error, factor, param, format string, args ...any) *ConfigError {
	return configErrorf(cause, factor, param, format, args...)
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
