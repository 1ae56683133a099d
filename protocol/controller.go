// SPDX-License-Identifier: EPL-2.0

package protocol

import (
	"log/slog"

	"github.com/ik5/wavepcm/encoder"
)

// State is the lifecycle position of a Controller.
type State int

const (
	StateUninitialized State = iota
	StateRecording
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRecording:
		return "recording"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Controller owns the encoder of one recording session and posts the
// protocol's outbound messages. It is not safe for concurrent use; the
// sinks serialize access to it.
type Controller struct {
	poster Poster
	logger *slog.Logger

	state State
	enc   *encoder.Encoder
}

// NewController returns a Controller in StateUninitialized.
func NewController(p Poster, opts ...Option) *Controller {
	o := buildOptions(opts)

	return &Controller{
		poster: p,
		logger: o.logger,
	}
}

// State reports the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Encoder returns the live encoder, or nil outside StateRecording.
func (c *Controller) Encoder() *encoder.Encoder { return c.enc }

// Init builds a fresh encoder for cfg, replacing any current one, and
// posts ready. On error nothing is posted and the controller is unchanged.
func (c *Controller) Init(cfg encoder.Config) error {
	if c.state == StateClosed {
		c.ignore(CommandInit)
		return nil
	}

	enc, err := encoder.New(cfg)
	if err != nil {
		c.logger.Warn("init rejected", "error", err)
		return err
	}

	if c.enc != nil {
		c.logger.Debug("replacing encoder", "buffered_bytes", c.enc.Len())
	}

	c.enc = enc
	c.state = StateRecording

	cfg = enc.Config()
	c.logger.Debug("encoder ready",
		"sample_rate", cfg.SampleRate,
		"bit_depth", cfg.BitDepth,
		"channels", cfg.NumberOfChannels)

	c.poster.Post(Message{Message: MessageReady})

	return nil
}

// Record appends one quantum while recording and drops it otherwise.
func (c *Controller) Record(buffers [][]float32) error {
	if c.state != StateRecording {
		return nil
	}

	return c.enc.Record(buffers)
}

// GetBuffer posts and drains the buffered PCM, if any.
func (c *Controller) GetBuffer() {
	if c.state != StateRecording {
		c.ignore(CommandGetBuffer)
		return
	}

	if data, ok := c.enc.RequestDataWithoutHeader(); ok {
		c.poster.Post(Message{Message: MessagePostBuffer, Buffer: data})
	}
}

// Done posts the finished WAVE file, if anything was recorded, followed by
// done, and returns to StateUninitialized.
func (c *Controller) Done() {
	if c.state != StateRecording {
		c.ignore(CommandDone)
		return
	}

	if data, ok := c.enc.RequestData(); ok {
		c.poster.Post(Message{Message: MessagePage, Page: data})
	}
	c.poster.Post(Message{Message: MessageDone})

	c.enc = nil
	c.state = StateUninitialized
}

// Close drops the encoder for good.
func (c *Controller) Close() {
	if c.state == StateClosed {
		return
	}

	c.enc = nil
	c.state = StateClosed
	c.logger.Debug("closed")
}

func (c *Controller) ignore(command string) {
	c.logger.Debug("command ignored", "command", command, "state", c.state)
}
