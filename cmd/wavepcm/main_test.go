package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/wavepcm/formats/wav"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "in.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// 3 stereo frames: (0, 0.5) (-0.5, -1) (0, 0)
	pcm := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0xC0, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00}
	if err := wav.Write(f, wav.Header{NumChannels: 2, SampleRate: 22050, BitsPerSample: 16}, pcm); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestDecoderFor(t *testing.T) {
	t.Parallel()

	reg := newRegistry()
	for _, name := range []string{"a.wav", "b.MP3", "c.ogg", "d.aiff", "e.aif"} {
		if _, err := decoderFor(reg, name); err != nil {
			t.Errorf("decoderFor(%q) error = %v", name, err)
		}
	}

	_, err := decoderFor(reg, "song.flac")
	if err == nil || !strings.Contains(err.Error(), "wav") {
		t.Errorf("decoderFor(flac) error = %v, want list of supported formats", err)
	}
}

// The commands share package-level state, so these steps run in order.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "wavepcm.yaml")
	in := writeInput(t, dir)

	t.Run("config init", func(t *testing.T) {
		out, err := execute(t, "config", "init", cfgPath, "--config", cfgPath)
		if err != nil {
			t.Fatalf("config init error = %v", err)
		}
		if !strings.Contains(out, cfgPath) {
			t.Errorf("output = %q", out)
		}

		if _, err := execute(t, "config", "init", cfgPath, "--config", cfgPath); err == nil {
			t.Error("second config init succeeded without --force")
		}
	})

	t.Run("config show", func(t *testing.T) {
		out, err := execute(t, "config", "show", "--config", cfgPath)
		if err != nil {
			t.Fatalf("config show error = %v", err)
		}
		if !strings.Contains(out, "bit_depth: 16") || !strings.Contains(out, "mode: worker") {
			t.Errorf("config show output = %q", out)
		}
	})

	t.Run("encode", func(t *testing.T) {
		outPath := filepath.Join(dir, "out.wav")
		_, err := execute(t, "encode", in, "-o", outPath, "--bit-depth", "8", "--raw=false", "--mode", "worklet", "--config", cfgPath)
		if err != nil {
			t.Fatalf("encode error = %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) != 44+6 {
			t.Fatalf("output = %d bytes, want 50", len(data))
		}
		if got := binary.LittleEndian.Uint32(data[24:28]); got != 22050 {
			t.Errorf("SampleRate = %d, want 22050", got)
		}
		want := []byte{0x7F, 0xBF, 0x3F, 0x00, 0x7F, 0x7F}
		if !bytes.Equal(data[44:], want) {
			t.Errorf("data = % X, want % X", data[44:], want)
		}
	})

	t.Run("encode raw to stdout", func(t *testing.T) {
		out, err := execute(t, "encode", in, "-o", "-", "--bit-depth", "16", "--raw", "--mode", "worker", "--config", cfgPath)
		if err != nil {
			t.Fatalf("encode error = %v", err)
		}
		if len(out) != 12 {
			t.Errorf("raw output = %d bytes, want 12", len(out))
		}
	})

	t.Run("encode unsupported", func(t *testing.T) {
		bogus := filepath.Join(dir, "in.flac")
		_ = os.WriteFile(bogus, []byte("fLaC"), 0o644)

		if _, err := execute(t, "encode", bogus, "-o", filepath.Join(dir, "x.wav"), "--raw=false", "--config", cfgPath); err == nil {
			t.Error("encode of flac succeeded")
		}
	})
}
