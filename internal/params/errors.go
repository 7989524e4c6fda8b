package params

import "github.com/go-faster/errors"

// ErrInvalidArgument marks parameter values that fail schema validation.
var ErrInvalidArgument = errors.New("invalid argument")
