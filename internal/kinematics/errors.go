package kinematics

import (
	"errors"
	"fmt"
)

// Domain errors for kinematics evaluation and construction.
var (
	// ErrMissingParameter indicates a required configuration key is absent.
	ErrMissingParameter = errors.New("kinematics: required parameter not found")

	// ErrNonFiniteTime indicates a NaN or infinite time input.
	ErrNonFiniteTime = errors.New("kinematics: time is not finite")
)

// ConfigError reports a missing required parameter for a named body.
// It is fatal: a body is never partially constructed.
type ConfigError struct {
	Body string
	Key  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("kinematics: body %q: required key %q not found in input parameters", e.Body, e.Key)
}

func (e *ConfigError) Unwrap() error {
	return ErrMissingParameter
}
