// SPDX-License-Identifier: EPL-2.0

package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestWorker_EncodeAndRecordAlias(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWorker(rec, quiet)
	_ = w.HandleCommand(initMono16())

	for _, name := range []string{CommandEncode, CommandRecord} {
		if err := w.HandleCommand(Command{Command: name, Buffers: [][]float32{{0, 0}}}); err != nil {
			t.Fatalf("%s error = %v", name, err)
		}
	}
	if err := w.HandleQuantum([][]float32{{0}}); err != nil {
		t.Fatalf("HandleQuantum() error = %v", err)
	}

	_ = w.HandleCommand(Command{Command: CommandGetBuffer})
	if got := len(rec.last().Buffer); got != 10 {
		t.Errorf("postBuffer = %d bytes, want 10", got)
	}
}

func TestWorker_EncodeBeforeInitDropped(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWorker(rec, quiet)

	if err := w.HandleCommand(Command{Command: CommandEncode, Buffers: [][]float32{{1}}}); err != nil {
		t.Errorf("encode before init error = %v", err)
	}
	_ = w.HandleCommand(initMono16())
	_ = w.HandleCommand(Command{Command: CommandDone})

	if got := rec.names(); !slices.Equal(got, []string{MessageReady, MessageDone}) {
		t.Errorf("messages = %v", got)
	}
}

func TestWorker_Run(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWorker(rec, quiet)

	cmds := make(chan Command, 8)
	cmds <- Command{Command: CommandInit, WavBitDepth: 16} // rejected, logged
	cmds <- initMono16()
	cmds <- Command{Command: CommandEncode, Buffers: [][]float32{{0, 0, 0, 0}}}
	cmds <- Command{Command: CommandDone}
	cmds <- Command{Command: CommandClose}
	cmds <- initMono16() // never read

	if err := w.Run(context.Background(), cmds); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := rec.names(); !slices.Equal(got, []string{MessageReady, MessagePage, MessageDone}) {
		t.Errorf("messages = %v", got)
	}
	if len(cmds) != 1 {
		t.Errorf("Run() consumed commands after close, %d left", len(cmds))
	}
	if w.Active() {
		t.Error("Active() after close = true")
	}
}

func TestWorker_RunStops(t *testing.T) {
	t.Parallel()

	t.Run("channel closed", func(t *testing.T) {
		t.Parallel()

		cmds := make(chan Command)
		close(cmds)

		if err := NewWorker(&recorder{}, quiet).Run(context.Background(), cmds); err != nil {
			t.Errorf("Run() error = %v", err)
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := NewWorker(&recorder{}, quiet).Run(ctx, make(chan Command))
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Run() error = %v, want DeadlineExceeded", err)
		}
	})
}

func TestWorker_ZeroChannelsRecordsMono(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		`{"command":"init","wavSampleRate":8000,"numberOfChannels":0}`,
		`{"command":"init","wavSampleRate":8000}`,
	} {
		var cmd Command
		if err := json.Unmarshal([]byte(raw), &cmd); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", raw, err)
		}

		rec := &recorder{}
		w := NewWorker(rec, quiet)
		if err := w.HandleCommand(cmd); err != nil {
			t.Fatalf("%s: init error = %v", raw, err)
		}
		if !slices.Equal(rec.names(), []string{MessageReady}) {
			t.Errorf("%s: messages = %v, want [ready]", raw, rec.names())
		}
		if got := w.ctrl.Encoder().Config().NumberOfChannels; got != 1 {
			t.Errorf("%s: channels = %d, want 1", raw, got)
		}
	}
}

func TestCommand_DecodeHostJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Command
	}{
		{
			name: "init",
			raw:  `{"command":"init","wavSampleRate":44100,"wavBitDepth":24,"numberOfChannels":2}`,
			want: Command{Command: CommandInit, WavSampleRate: 44100, WavBitDepth: 24, NumberOfChannels: 2},
		},
		{
			name: "init with defaults",
			raw:  `{"command":"init","wavSampleRate":8000}`,
			want: Command{Command: CommandInit, WavSampleRate: 8000},
		},
		{
			name: "getBuffer",
			raw:  `{"command":"getBuffer"}`,
			want: Command{Command: CommandGetBuffer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got Command
			if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got.Command != tt.want.Command || got.Config() != tt.want.Config() {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	var enc Command
	_ = json.Unmarshal([]byte(`{"command":"encode","buffers":[[0.5,-0.5],[1,0]]}`), &enc)
	if len(enc.Buffers) != 2 || enc.Buffers[0][1] != -0.5 || enc.Buffers[1][0] != 1 {
		t.Errorf("buffers = %v", enc.Buffers)
	}
}

func TestMessage_Payload(t *testing.T) {
	t.Parallel()

	if got := (Message{Message: MessagePage, Page: []byte{1}}).Payload(); len(got) != 1 {
		t.Errorf("page payload = %v", got)
	}
	if got := (Message{Message: MessagePostBuffer, Buffer: []byte{1, 2}}).Payload(); len(got) != 2 {
		t.Errorf("buffer payload = %v", got)
	}
	if got := (Message{Message: MessageReady}).Payload(); got != nil {
		t.Errorf("ready payload = %v, want nil", got)
	}
}
