package protocol

import "errors"

var (
	// ErrUnknownMode indicates a sink mode other than worker or worklet
	ErrUnknownMode = errors.New("unknown sink mode")
)
