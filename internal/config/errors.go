package config

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned (wrapped) for any argument the generators
// cannot accept: non-positive sizes, zero scale, degenerate grid powers and
// the like. Test with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnknownBackend is returned when a config names a backend that is not
// registered with the sampler.
var ErrUnknownBackend = fmt.Errorf("%w: unknown backend", ErrInvalidArgument)
