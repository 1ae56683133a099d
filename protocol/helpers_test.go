// SPDX-License-Identifier: EPL-2.0

package protocol

import (
	"log/slog"
	"slices"
	"sync"
)

var quiet = WithLogger(slog.New(slog.DiscardHandler))

// recorder is a Poster that keeps every message.
type recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *recorder) Post(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.msgs = append(r.msgs, m)
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		names = append(names, m.Message)
	}

	return names
}

func (r *recorder) last() Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.msgs[len(r.msgs)-1]
}

func (r *recorder) find(name string) (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.msgs, func(m Message) bool { return m.Message == name })
	if i < 0 {
		return Message{}, false
	}

	return r.msgs[i], true
}

func initMono16() Command {
	return Command{Command: CommandInit, WavSampleRate: 44100, WavBitDepth: 16, NumberOfChannels: 1}
}
