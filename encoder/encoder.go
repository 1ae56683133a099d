// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"fmt"
	"time"

	"github.com/ik5/wavepcm/formats/wav"
)

// Encoder accumulates quantized quanta for one recording.
type Encoder struct {
	cfg   Config
	width int
	put   putFunc

	quanta [][]byte
	size   int
}

// New returns an empty Encoder for cfg after filling defaults. Errors
// match ErrConfiguration.
func New(cfg Config) (*Encoder, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	put, err := quantizer(cfg.BytesPerSample())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return &Encoder{
		cfg:   cfg,
		width: cfg.BytesPerSample(),
		put:   put,
	}, nil
}

// Record quantizes one planar quantum and appends it. buffers must hold at
// least NumberOfChannels slices of equal length; extra slices are ignored.
// An empty quantum records nothing.
func (e *Encoder) Record(buffers [][]float32) error {
	channels := e.cfg.NumberOfChannels
	if len(buffers) < channels {
		return fmt.Errorf("%w: %d buffers for %d channels", ErrQuantumShape, len(buffers), channels)
	}
	buffers = buffers[:channels]

	frames := len(buffers[0])
	for ch, b := range buffers[1:] {
		if len(b) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrQuantumShape, ch+1, len(b), frames)
		}
	}

	if frames == 0 {
		return nil
	}

	out := make([]byte, frames*channels*e.width)
	quantizeInto(out, buffers, e.width, e.put)

	e.quanta = append(e.quanta, out)
	e.size += len(out)

	return nil
}

// RequestData returns a complete WAVE file of everything recorded so far.
// The recorded data is kept. ok is false when nothing has been recorded.
func (e *Encoder) RequestData() (data []byte, ok bool) {
	if len(e.quanta) == 0 {
		return nil, false
	}

	data = make([]byte, wav.HeaderSize+e.size)
	wav.PutHeader(data, e.cfg.header(e.size))

	off := wav.HeaderSize
	for _, q := range e.quanta {
		off += copy(data[off:], q)
	}

	return data, true
}

// RequestDataWithoutHeader returns the recorded PCM and empties the
// encoder. A single buffered quantum is returned as is. ok is false when
// nothing is buffered.
func (e *Encoder) RequestDataWithoutHeader() (data []byte, ok bool) {
	switch len(e.quanta) {
	case 0:
		return nil, false
	case 1:
		data = e.quanta[0]
	default:
		data = make([]byte, 0, e.size)
		for _, q := range e.quanta {
			data = append(data, q...)
		}
	}

	clear(e.quanta)
	e.quanta = e.quanta[:0]
	e.size = 0

	return data, true
}

// Config returns the effective configuration, defaults applied.
func (e *Encoder) Config() Config { return e.cfg }

// Len is the number of buffered PCM bytes.
func (e *Encoder) Len() int { return e.size }

// Quanta is the number of buffered quanta.
func (e *Encoder) Quanta() int { return len(e.quanta) }

// Duration is the playback time of the buffered PCM.
func (e *Encoder) Duration() time.Duration {
	frames := e.size / e.cfg.BlockAlign()
	return time.Duration(frames) * time.Second / time.Duration(e.cfg.SampleRate)
}
