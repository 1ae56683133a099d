// SPDX-License-Identifier: EPL-2.0

package protocol

import "fmt"

// Sink accepts host commands and audio quanta for one recording session.
type Sink interface {
	// HandleCommand applies one command. Only a failed init returns an error.
	HandleCommand(cmd Command) error
	// HandleQuantum records one planar quantum if a recording is active.
	HandleQuantum(buffers [][]float32) error
	// Active is false once the session has been closed.
	Active() bool
}

// Mode selects the Sink variant for a host.
type Mode string

const (
	// ModeWorker receives quanta inside encode commands.
	ModeWorker Mode = "worker"
	// ModeWorklet receives quanta from a processing callback.
	ModeWorklet Mode = "worklet"
)

// ParseMode validates s as a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeWorker, ModeWorklet:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// NewSink returns the Sink variant for mode.
func NewSink(mode Mode, p Poster, opts ...Option) (Sink, error) {
	switch mode {
	case ModeWorker:
		return NewWorker(p, opts...), nil
	case ModeWorklet:
		return NewWorklet(p, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
