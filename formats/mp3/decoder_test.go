package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/wavepcm/audio"
)

var errDecode = errors.New("corrupt frame")

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	samples    []int16 // interleaved stereo PCM
	offset     int
	chunk      int // max bytes per Read, 0 means unlimited
	err        error
}

func (m *mockMP3Reader) SampleRate() int {
	return m.sampleRate
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := len(buf) / 2
	if m.chunk > 0 && n > m.chunk/2 {
		n = m.chunk / 2
	}
	if rest := len(m.samples) - m.offset; n > rest {
		n = rest
	}

	for i := range n {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(m.samples[m.offset+i]))
	}
	m.offset += n

	return n * 2, nil
}

func newTestSource(samples []int16) *source {
	return &source{
		dec:        &mockMP3Reader{sampleRate: 44100, samples: samples},
		sampleRate: 44100,
		channels:   outputChannels,
	}
}

func TestSource_Properties(t *testing.T) {
	t.Parallel()

	src := newTestSource(nil)
	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestSource_ReadFrames_Deinterleaves(t *testing.T) {
	t.Parallel()

	src := newTestSource([]int16{0, 16384, -16384, 32767, -32768, 0})
	dst := audio.NewPlanar(2, 3)

	n, err := src.ReadFrames(dst)
	if err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("ReadFrames() = %d frames, want 3", n)
	}

	wantL := []float32{0, -0.5, -1}
	wantR := []float32{0.5, 32767.0 / 32768.0, 0}
	for i := range 3 {
		if math.Abs(float64(dst[0][i]-wantL[i])) > 1e-6 {
			t.Errorf("left[%d] = %f, want %f", i, dst[0][i], wantL[i])
		}
		if math.Abs(float64(dst[1][i]-wantR[i])) > 1e-6 {
			t.Errorf("right[%d] = %f, want %f", i, dst[1][i], wantR[i])
		}
	}
}

func TestSource_ReadFrames_EOF(t *testing.T) {
	t.Parallel()

	src := newTestSource([]int16{100, 200, 300, 400, 500, 600})
	dst := audio.NewPlanar(2, 2)

	total := 0
	for {
		n, err := src.ReadFrames(dst)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadFrames() error = %v", err)
		}
	}

	if total != 3 {
		t.Errorf("total frames = %d, want 3", total)
	}

	n, err := src.ReadFrames(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("read past end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadFrames_SmallChunks(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 64)
	for i := range samples {
		samples[i] = int16(i * 100)
	}

	src := newTestSource(samples)
	src.dec.(*mockMP3Reader).chunk = 6

	dst := audio.NewPlanar(2, 32)
	n, err := src.ReadFrames(dst)
	if err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	if n != 32 {
		t.Fatalf("ReadFrames() = %d, want 32 frames", n)
	}

	for i := range n {
		want := float32(i*2*100) / 32768.0
		if dst[0][i] != want {
			t.Errorf("left[%d] = %f, want %f", i, dst[0][i], want)
		}
	}
}

func TestSource_ReadFrames_Errors(t *testing.T) {
	t.Parallel()

	t.Run("wrong channel count", func(t *testing.T) {
		t.Parallel()

		src := newTestSource([]int16{1, 2})
		_, err := src.ReadFrames(audio.NewPlanar(1, 4))
		if !errors.Is(err, audio.ErrInvalidDstSize) {
			t.Errorf("err = %v, want ErrInvalidDstSize", err)
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		t.Parallel()

		src := newTestSource([]int16{1, 2})
		n, err := src.ReadFrames(audio.NewPlanar(2, 0))
		if n != 0 || err != nil {
			t.Errorf("ReadFrames() = (%d, %v), want (0, nil)", n, err)
		}
	})

	t.Run("decoder failure", func(t *testing.T) {
		t.Parallel()

		src := newTestSource(nil)
		src.dec.(*mockMP3Reader).err = errDecode
		_, err := src.ReadFrames(audio.NewPlanar(2, 4))
		if !errors.Is(err, errDecode) {
			t.Errorf("err = %v, want %v", err, errDecode)
		}
	})
}

func TestDecoder_Decode_InvalidData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("this is not an mp3 stream at all")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); err == nil {
				t.Error("Decode() expected error")
			}
		})
	}
}

func BenchmarkSource_ReadFrames(b *testing.B) {
	samples := make([]int16, 2*1024)
	dst := audio.NewPlanar(2, 1024)

	b.ResetTimer()
	for b.Loop() {
		src := newTestSource(samples)
		_, _ = src.ReadFrames(dst)
	}
}
