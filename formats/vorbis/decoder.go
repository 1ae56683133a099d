// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavepcm/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	tmp        []float32 // interleaved values from the decoder
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadFrames(dst [][]float32) (int, error) {
	if len(dst) != s.channels {
		return 0, audio.ErrInvalidDstSize
	}

	frames := audio.FrameCapacity(dst)
	if frames == 0 {
		return 0, nil
	}

	want := frames * s.channels
	if cap(s.tmp) < want {
		s.tmp = make([]float32, want)
	}
	s.tmp = s.tmp[:want]

	// oggvorbis returns interleaved values, at most one packet per call.
	var (
		filled int
		err    error
	)
	for filled < want && err == nil {
		var n int
		n, err = s.dec.Read(s.tmp[filled:])
		filled += n
		if n == 0 && err == nil {
			break
		}
	}

	got, _ := audio.Deinterleave(dst, s.tmp[:filled-filled%s.channels])

	switch {
	case err == nil:
		return got, nil
	case errors.Is(err, io.EOF):
		return got, io.EOF
	default:
		return got, fmt.Errorf("%w", err)
	}
}

// Decoder decodes Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		tmp:        make([]float32, 4096),
	}, nil
}
