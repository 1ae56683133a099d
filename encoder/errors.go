package encoder

import "errors"

var (
	// ErrConfiguration is returned by New for any invalid Config. It always
	// wraps one of the more specific errors below.
	ErrConfiguration = errors.New("invalid encoder configuration")

	// ErrMissingSampleRate indicates a zero or negative sample rate
	ErrMissingSampleRate = errors.New("sample rate is required")

	// ErrUnsupportedBitDepth indicates a bit depth other than 8, 16, 24 or 32
	ErrUnsupportedBitDepth = errors.New("bit depth must be 8, 16, 24 or 32")

	// ErrInvalidChannels indicates a channel count outside 1..65535
	ErrInvalidChannels = errors.New("invalid number of channels")

	// ErrUnsupportedFormat indicates a sample width the quantizer cannot produce
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrQuantumShape indicates missing channel buffers or buffers of unequal length
	ErrQuantumShape = errors.New("quantum does not match channel layout")
)
