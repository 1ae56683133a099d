package wavepcm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/wavepcm/audio"
	"github.com/ik5/wavepcm/encoder"
	"github.com/ik5/wavepcm/formats/wav"
	"github.com/ik5/wavepcm/protocol"
)

const (
	// DefaultQuantumFrames is the Web Audio render quantum.
	DefaultQuantumFrames = 128
	// DefaultFlushEvery is how many quanta Stream buffers between writes.
	DefaultFlushEvery = 64

	// maxEmptyReads bounds consecutive (0, nil) reads from a Source.
	maxEmptyReads = 100
)

// Options controls how a Source is fed to the encoder.
type Options struct {
	// BitDepth of the output; 0 means 16.
	BitDepth int
	// QuantumFrames is the number of frames per recorded quantum.
	QuantumFrames int
	// FlushEvery is the number of quanta between getBuffer requests in Stream.
	FlushEvery int
	// Mode selects the sink variant; empty means protocol.ModeWorker.
	Mode protocol.Mode
	// Logger receives protocol events; nil means slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.QuantumFrames <= 0 {
		o.QuantumFrames = DefaultQuantumFrames
	}
	if o.FlushEvery <= 0 {
		o.FlushEvery = DefaultFlushEvery
	}
	if o.Mode == "" {
		o.Mode = protocol.ModeWorker
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return o
}

func (o Options) initCommand(src audio.Source) protocol.Command {
	return protocol.Command{
		Command:          protocol.CommandInit,
		WavSampleRate:    src.SampleRate(),
		WavBitDepth:      o.BitDepth,
		NumberOfChannels: src.Channels(),
	}
}

// processor is implemented by sinks driven by a render callback.
type processor interface {
	Process(inputs [][][]float32) bool
}

// Encode reads src to the end and returns it as a WAVE file.
func Encode(src audio.Source, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	var page []byte
	sink, err := protocol.NewSink(opts.Mode, protocol.PosterFunc(func(m protocol.Message) {
		if m.Message == protocol.MessagePage {
			page = m.Page
		}
	}), protocol.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}

	if err := sink.HandleCommand(opts.initCommand(src)); err != nil {
		return nil, err
	}

	if err := feed(context.Background(), src, sink, opts, nil); err != nil {
		return nil, err
	}

	if err := sink.HandleCommand(protocol.Command{Command: protocol.CommandDone}); err != nil {
		return nil, err
	}

	if page == nil {
		return emptyFile(src.SampleRate(), src.Channels(), opts.BitDepth), nil
	}

	return page, nil
}

// Stream reads src to the end and writes its PCM to w without a header,
// flushing every opts.FlushEvery quanta. It returns the number of bytes
// written.
func Stream(ctx context.Context, src audio.Source, opts Options, w io.Writer) (int64, error) {
	opts = opts.withDefaults()

	var (
		written  int64
		writeErr error
	)
	sink, err := protocol.NewSink(opts.Mode, protocol.PosterFunc(func(m protocol.Message) {
		if m.Message != protocol.MessagePostBuffer || writeErr != nil {
			return
		}
		n, err := w.Write(m.Buffer)
		written += int64(n)
		if err != nil {
			writeErr = fmt.Errorf("writing pcm: %w", err)
		}
	}), protocol.WithLogger(opts.Logger))
	if err != nil {
		return 0, err
	}
	defer sink.HandleCommand(protocol.Command{Command: protocol.CommandClose})

	if err := sink.HandleCommand(opts.initCommand(src)); err != nil {
		return 0, err
	}

	flush := func() error {
		_ = sink.HandleCommand(protocol.Command{Command: protocol.CommandGetBuffer})
		return writeErr
	}

	if err := feed(ctx, src, sink, opts, flush); err != nil {
		return written, err
	}

	return written, flush()
}

// feed reads src in quanta of opts.QuantumFrames and hands each to sink.
// flush, when set, runs after every opts.FlushEvery quanta.
func feed(ctx context.Context, src audio.Source, sink protocol.Sink, opts Options, flush func() error) error {
	dst := audio.NewPlanar(src.Channels(), opts.QuantumFrames)
	quantum := make([][]float32, len(dst))
	proc, isProcessor := sink.(processor)

	quanta, empty := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := src.ReadFrames(dst)
		if n > 0 {
			empty = 0
			for ch := range dst {
				quantum[ch] = dst[ch][:n]
			}

			if isProcessor {
				if !proc.Process([][][]float32{quantum}) {
					return nil
				}
			} else if rerr := sink.HandleQuantum(quantum); rerr != nil {
				return rerr
			}

			quanta++
			if flush != nil && quanta%opts.FlushEvery == 0 {
				if ferr := flush(); ferr != nil {
					return ferr
				}
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("reading source: %w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return io.ErrNoProgress
			}
		}
	}
}

// EncodeBuffer encodes an interleaved go-audio buffer as a WAVE file. A
// zero bitDepth uses the buffer's SourceBitDepth when the encoder supports
// it, and 16 otherwise.
func EncodeBuffer(buf *goaudio.Float32Buffer, bitDepth int) ([]byte, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNilBuffer
	}

	if bitDepth == 0 {
		switch buf.SourceBitDepth {
		case 8, 16, 24, 32:
			bitDepth = buf.SourceBitDepth
		}
	}

	enc, err := encoder.New(encoder.Config{
		SampleRate:       buf.Format.SampleRate,
		BitDepth:         bitDepth,
		NumberOfChannels: buf.Format.NumChannels,
	})
	if err != nil {
		return nil, err
	}

	cfg := enc.Config()
	if len(buf.Data)%cfg.NumberOfChannels != 0 {
		return nil, fmt.Errorf("%w: %d samples for %d channels",
			encoder.ErrQuantumShape, len(buf.Data), cfg.NumberOfChannels)
	}

	planar := audio.NewPlanar(cfg.NumberOfChannels, len(buf.Data)/cfg.NumberOfChannels)
	if _, err := audio.Deinterleave(planar, buf.Data); err != nil {
		return nil, err
	}

	if err := enc.Record(planar); err != nil {
		return nil, err
	}

	data, ok := enc.RequestData()
	if !ok {
		return emptyFile(cfg.SampleRate, cfg.NumberOfChannels, cfg.BitDepth), nil
	}

	return data, nil
}

// emptyFile is a header-only WAVE file.
func emptyFile(sampleRate, channels, bitDepth int) []byte {
	if bitDepth == 0 {
		bitDepth = encoder.DefaultBitDepth
	}

	data := make([]byte, wav.HeaderSize)
	wav.PutHeader(data, wav.Header{
		NumChannels:   channels,
		SampleRate:    sampleRate,
		BitsPerSample: bitDepth,
	})

	return data
}
