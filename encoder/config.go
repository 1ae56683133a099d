// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"fmt"
	"math"

	"github.com/ik5/wavepcm/formats/wav"
)

const (
	// DefaultBitDepth is used when Config.BitDepth is zero.
	DefaultBitDepth = 16
	// DefaultChannels is used when Config.NumberOfChannels is zero.
	DefaultChannels = 1
)

// Config is the immutable output format of an Encoder.
type Config struct {
	SampleRate       int
	BitDepth         int
	NumberOfChannels int
}

// WithDefaults fills unset BitDepth and NumberOfChannels.
func (c Config) WithDefaults() Config {
	if c.BitDepth == 0 {
		c.BitDepth = DefaultBitDepth
	}
	if c.NumberOfChannels == 0 {
		c.NumberOfChannels = DefaultChannels
	}

	return c
}

// BytesPerSample is the width of one encoded sample.
func (c Config) BytesPerSample() int { return c.BitDepth / 8 }

// BlockAlign is the width of one encoded frame across all channels.
func (c Config) BlockAlign() int { return c.BytesPerSample() * c.NumberOfChannels }

// Validate checks c as given, without applying defaults. Every error it
// returns matches ErrConfiguration.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrMissingSampleRate)
	}

	switch c.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %w: got %d", ErrConfiguration, ErrUnsupportedBitDepth, c.BitDepth)
	}

	if c.NumberOfChannels < 1 || c.NumberOfChannels > math.MaxUint16 {
		return fmt.Errorf("%w: %w: got %d", ErrConfiguration, ErrInvalidChannels, c.NumberOfChannels)
	}

	if err := c.header(0).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}

func (c Config) header(dataLength int) wav.Header {
	return wav.Header{
		NumChannels:   c.NumberOfChannels,
		SampleRate:    c.SampleRate,
		BitsPerSample: c.BitDepth,
		DataLength:    dataLength,
	}
}
