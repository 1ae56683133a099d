// SPDX-License-Identifier: EPL-2.0

package protocol

import "github.com/ik5/wavepcm/encoder"

// Command names understood by the sinks.
const (
	CommandInit      = "init"
	CommandEncode    = "encode"
	CommandRecord    = "record" // alias of encode
	CommandGetBuffer = "getBuffer"
	CommandDone      = "done"
	CommandClose     = "close"
)

// Command is one inbound host message.
//
// An init with numberOfChannels absent or 0 records mono: the zero value is
// indistinguishable from an omitted field and encoder.Config.WithDefaults
// replaces it with DefaultChannels.
type Command struct {
	Command          string      `json:"command"`
	WavSampleRate    int         `json:"wavSampleRate,omitempty"`
	WavBitDepth      int         `json:"wavBitDepth,omitempty"`
	NumberOfChannels int         `json:"numberOfChannels,omitempty"`
	Buffers          [][]float32 `json:"buffers,omitempty"`
}

// Config maps the init fields onto an encoder configuration. Zero values
// are left for encoder.New to default or reject.
func (c Command) Config() encoder.Config {
	return encoder.Config{
		SampleRate:       c.WavSampleRate,
		BitDepth:         c.WavBitDepth,
		NumberOfChannels: c.NumberOfChannels,
	}
}
