package wavepcm

import "errors"

var (
	// ErrNilBuffer indicates a missing buffer or one without a Format
	ErrNilBuffer = errors.New("buffer or its format is nil")
)
