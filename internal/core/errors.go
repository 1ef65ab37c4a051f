package core

import "errors"

var (
	// ErrEmptyInput is returned when a query or memory text is blank after trimming.
	ErrEmptyInput = errors.New("empty input")
	// ErrBusy is returned when a session already has a request in flight.
	ErrBusy = errors.New("session is busy")
)
