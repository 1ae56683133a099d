// SPDX-License-Identifier: EPL-2.0

package protocol

import (
	"log/slog"
	"sync"
)

// Worklet is the Sink for hosts that call back once per render quantum.
// Commands may arrive from another goroutine than Process.
type Worklet struct {
	mu     sync.Mutex
	ctrl   *Controller
	logger *slog.Logger
}

// NewWorklet returns an uninitialized Worklet posting to p.
func NewWorklet(p Poster, opts ...Option) *Worklet {
	o := buildOptions(opts)

	return &Worklet{
		ctrl:   NewController(p, opts...),
		logger: o.logger,
	}
}

// Process records the first input of one render callback and reports
// whether the host should keep calling. Inputs without frames are skipped.
func (w *Worklet) Process(inputs [][][]float32) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(inputs) > 0 && hasFrames(inputs[0]) {
		if err := w.ctrl.Record(inputs[0]); err != nil {
			w.logger.Debug("quantum dropped", "error", err)
		}
	}

	return w.ctrl.State() != StateClosed
}

func (w *Worklet) HandleCommand(cmd Command) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch cmd.Command {
	case CommandInit:
		return w.ctrl.Init(cmd.Config())
	case CommandGetBuffer:
		w.ctrl.GetBuffer()
	case CommandDone:
		w.ctrl.Done()
	case CommandClose:
		w.ctrl.Close()
	default:
		w.ctrl.ignore(cmd.Command)
	}

	return nil
}

func (w *Worklet) HandleQuantum(buffers [][]float32) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !hasFrames(buffers) {
		return nil
	}

	return w.ctrl.Record(buffers)
}

func (w *Worklet) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.ctrl.State() != StateClosed
}

// hasFrames reports whether input has at least one channel and no channel
// is empty.
func hasFrames(input [][]float32) bool {
	if len(input) == 0 {
		return false
	}

	for _, ch := range input {
		if len(ch) == 0 {
			return false
		}
	}

	return true
}
