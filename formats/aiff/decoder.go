package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/wavepcm/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
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

	samplesNeeded := frames * s.channels
	if s.intBuf == nil || cap(s.intBuf.Data) < samplesNeeded {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, samplesNeeded),
			Format: s.dec.Format(),
		}
		s.tmp = make([]float32, samplesNeeded)
	}
	s.intBuf.Data = s.intBuf.Data[:samplesNeeded]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	// AIFF samples are signed at every depth, 8-bit included.
	maxVal := float32(int64(1) << (s.bitDepth - 1))
	for i, v := range s.intBuf.Data[:n] {
		s.tmp[i] = float32(v) / maxVal
	}

	got, _ := audio.Deinterleave(dst, s.tmp[:n])

	if n < samplesNeeded && err == nil {
		return got, io.EOF
	}

	if err != nil && err != io.EOF {
		return got, fmt.Errorf("%w", err)
	}

	return got, err
}

// Decoder reads uncompressed AIFF files of 8, 16, 24 or 32 bits per sample.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
