// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/wavepcm/audio"
)

// go-mp3 always produces interleaved 16-bit little-endian stereo.
const (
	outputChannels = 2
	bytesPerSample = 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
	tmp        []float32
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

	bytesNeeded := frames * s.channels * bytesPerSample
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
		s.tmp = make([]float32, frames*s.channels)
	}
	s.buf = s.buf[:bytesNeeded]

	// Whole frames only; go-mp3 may hand back fewer bytes than asked.
	n, err := io.ReadFull(s.dec, s.buf)
	samples := n / bytesPerSample
	samples -= samples % s.channels

	for i := range samples {
		val := int16(binary.LittleEndian.Uint16(s.buf[bytesPerSample*i:]))
		s.tmp[i] = float32(val) / 32768.0
	}

	got, _ := audio.Deinterleave(dst, s.tmp[:samples])

	switch {
	case err == nil:
		return got, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return got, io.EOF
	default:
		return got, fmt.Errorf("%w", err)
	}
}

// Decoder decodes MPEG-1 Layer III streams into stereo float32 frames.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   outputChannels,
		buf:        make([]byte, 8192),
	}, nil
}
