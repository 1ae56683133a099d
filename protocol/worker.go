// SPDX-License-Identifier: EPL-2.0

package protocol

import (
	"context"
	"log/slog"
	"sync"
)

// Worker is the Sink for hosts that only exchange messages: audio arrives
// in encode commands.
type Worker struct {
	mu     sync.Mutex
	ctrl   *Controller
	logger *slog.Logger
}

// NewWorker returns an uninitialized Worker posting to p.
func NewWorker(p Poster, opts ...Option) *Worker {
	o := buildOptions(opts)

	return &Worker{
		ctrl:   NewController(p, opts...),
		logger: o.logger,
	}
}

func (w *Worker) HandleCommand(cmd Command) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch cmd.Command {
	case CommandInit:
		return w.ctrl.Init(cmd.Config())
	case CommandEncode, CommandRecord:
		return w.ctrl.Record(cmd.Buffers)
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

func (w *Worker) HandleQuantum(buffers [][]float32) error {
	return w.HandleCommand(Command{Command: CommandEncode, Buffers: buffers})
}

func (w *Worker) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.ctrl.State() != StateClosed
}

// Run handles commands in arrival order until close, until cmds is closed
// or until ctx is done. Command errors are logged and do not stop the loop.
func (w *Worker) Run(ctx context.Context, cmds <-chan Command) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-cmds:
			if !ok {
				return nil
			}

			if err := w.HandleCommand(cmd); err != nil {
				w.logger.Warn("command failed", "command", cmd.Command, "error", err)
			}

			if !w.Active() {
				return nil
			}
		}
	}
}
