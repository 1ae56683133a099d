package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/wavepcm"
	"github.com/ik5/wavepcm/protocol"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <input>",
	Short: "Re-encode an audio file as PCM WAVE",
	Long: `Decode a WAV, MP3, Ogg Vorbis or AIFF file and encode it as PCM at the
requested bit depth. The sample rate and channel layout are kept.

With --raw the output is header-less PCM written as the input is read,
flushed every quantum.flush_every quanta.

Use "-o -" to write to standard output.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringP("output", "o", "", "output file, - for stdout")
	encodeCmd.Flags().Int("bit-depth", 0, "bit depth: 8, 16, 24 or 32 (default from config)")
	encodeCmd.Flags().Bool("raw", false, "write header-less PCM")
	encodeCmd.Flags().String("mode", "", "sink variant: worker or worklet (default from config)")
	_ = encodeCmd.MarkFlagRequired("output")
}

func runEncode(cmd *cobra.Command, args []string) error {
	inPath := args[0]
	outPath, _ := cmd.Flags().GetString("output")
	raw, _ := cmd.Flags().GetBool("raw")

	opts, err := encodeOptions(cmd)
	if err != nil {
		return err
	}

	dec, err := decoderFor(newRegistry(), inPath)
	if err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("error opening input: %w", err)
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", inPath, err)
	}
	defer src.Close()

	slog.Info("encoding",
		"input", inPath,
		"sample_rate", src.SampleRate(),
		"channels", src.Channels(),
		"bit_depth", opts.BitDepth,
		"mode", opts.Mode,
		"raw", raw)

	out, closeOut, err := openOutput(cmd, outPath)
	if err != nil {
		return err
	}
	defer closeOut()

	start := time.Now()

	var written int64
	if raw {
		written, err = wavepcm.Stream(cmd.Context(), src, opts, out)
		if err != nil {
			return fmt.Errorf("error streaming pcm: %w", err)
		}
	} else {
		data, err := wavepcm.Encode(src, opts)
		if err != nil {
			return fmt.Errorf("error encoding: %w", err)
		}

		n, err := out.Write(data)
		if err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
		written = int64(n)
	}

	slog.Info("done", "output", outPath, "bytes", written, "elapsed", time.Since(start))

	return nil
}

// encodeOptions merges command flags over the loaded configuration.
func encodeOptions(cmd *cobra.Command) (wavepcm.Options, error) {
	bitDepth, _ := cmd.Flags().GetInt("bit-depth")
	if bitDepth == 0 {
		bitDepth = cfg.Encoder.BitDepth
	}

	modeName, _ := cmd.Flags().GetString("mode")
	if modeName == "" {
		modeName = cfg.Mode
	}
	mode, err := protocol.ParseMode(modeName)
	if err != nil {
		return wavepcm.Options{}, err
	}

	return wavepcm.Options{
		BitDepth:      bitDepth,
		QuantumFrames: cfg.Quantum.Frames,
		FlushEvery:    cfg.Quantum.FlushEvery,
		Mode:          mode,
		Logger:        slog.Default(),
	}, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output: %w", err)
	}

	return f, func() {
		if err := f.Close(); err != nil {
			slog.Warn("closing output", "path", path, "error", err)
		}
	}, nil
}
