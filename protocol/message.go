// SPDX-License-Identifier: EPL-2.0

package protocol

// Outbound message names.
const (
	MessageReady      = "ready"
	MessagePage       = "page"
	MessageDone       = "done"
	MessagePostBuffer = "postBuffer"
)

// Message is one outbound notification. Page carries a complete WAVE file,
// Buffer carries header-less PCM.
type Message struct {
	Message string `json:"message"`
	Page    []byte `json:"page,omitempty"`
	Buffer  []byte `json:"buffer,omitempty"`
}

// Payload returns whichever of Page or Buffer is set.
func (m Message) Payload() []byte {
	if m.Page != nil {
		return m.Page
	}

	return m.Buffer
}

// Poster delivers messages to the host. Post takes ownership of the
// payload; the sender never touches it again.
type Poster interface {
	Post(Message)
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(Message)

func (f PosterFunc) Post(m Message) { f(m) }
