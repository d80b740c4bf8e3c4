package formhttp

import "errors"

var (
	ErrNoForm        = errors.New("markup contains no form")
	ErrNoConfig      = errors.New("no validation config available")
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidSignal = errors.New("failed to read datastar signals")
)
