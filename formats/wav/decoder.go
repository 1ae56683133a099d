package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavepcm/audio"
)

// pcmReader is the part of gowav.Decoder the source needs; it allows testing.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type wavSource struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	tmp        []float32
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadFrames(dst [][]float32) (int, error) {
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
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	scale, offset := normalization(s.bitDepth)
	for i, v := range s.intBuf.Data[:n] {
		s.tmp[i] = float32(v-offset) / scale
	}

	got, _ := audio.Deinterleave(dst, s.tmp[:n])

	// A short read with no error means the data chunk is exhausted.
	if n < samplesNeeded && err == nil {
		return got, io.EOF
	}

	if err != nil {
		return got, fmt.Errorf("%w", err)
	}

	return got, nil
}

// normalization returns the divisor and the zero offset that map a decoded
// integer sample of the given bit depth onto [-1, 1). 8-bit WAV is unsigned.
func normalization(bitDepth int) (float32, int) {
	switch bitDepth {
	case 8:
		return 128.0, 128
	case 24:
		return 8388608.0, 0
	case 32:
		return 2147483648.0, 0
	default:
		return 32768.0, 0
	}
}

// Decoder reads PCM WAV files of 8, 16, 24 or 32 bits per sample.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()

	if dec.WavAudioFormat != FormatPCM {
		return nil, ErrOnlyPCMSupported
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedWavLayout
	}

	return &wavSource{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
