// SPDX-License-Identifier: EPL-2.0

package protocol_test

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/wavepcm/protocol"
)

func Example() {
	poster := protocol.PosterFunc(func(m protocol.Message) {
		if m.Page != nil {
			fmt.Println(m.Message, len(m.Page), binary.LittleEndian.Uint32(m.Page[24:28]), string(m.Page[36:40]))
			return
		}
		fmt.Println(m.Message)
	})

	worker := protocol.NewWorker(poster)

	_ = worker.HandleCommand(protocol.Command{
		Command:          protocol.CommandInit,
		WavSampleRate:    44100,
		WavBitDepth:      16,
		NumberOfChannels: 1,
	})
	_ = worker.HandleCommand(protocol.Command{
		Command: protocol.CommandEncode,
		Buffers: [][]float32{{0, 0, 0, 0}},
	})
	_ = worker.HandleCommand(protocol.Command{Command: protocol.CommandDone})

	// Output:
	// ready
	// page 52 44100 data
	// done
}

// ExampleWorklet_Process shows the callback-driven variant.
func ExampleWorklet_Process() {
	var pcm []byte
	worklet := protocol.NewWorklet(protocol.PosterFunc(func(m protocol.Message) {
		if m.Message == protocol.MessagePostBuffer {
			pcm = m.Buffer
		}
	}))

	_ = worklet.HandleCommand(protocol.Command{Command: protocol.CommandInit, WavSampleRate: 8000, WavBitDepth: 8})
	worklet.Process([][][]float32{{{0, 1, -1}}})
	_ = worklet.HandleCommand(protocol.Command{Command: protocol.CommandGetBuffer})
	_ = worklet.HandleCommand(protocol.Command{Command: protocol.CommandClose})

	fmt.Printf("% X\n", pcm)
	fmt.Println(worklet.Process(nil))

	// Output:
	// 7F FF 00
	// false
}

func ExampleNewSink_initError() {
	sink, _ := protocol.NewSink(protocol.ModeWorker, protocol.PosterFunc(func(m protocol.Message) {
		fmt.Println(m.Message)
	}))

	err := sink.HandleCommand(protocol.Command{Command: protocol.CommandInit, WavSampleRate: 44100, WavBitDepth: 12})
	fmt.Println(err != nil)

	// Output:
	// true
}
