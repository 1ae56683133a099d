// SPDX-License-Identifier: EPL-2.0

// Package audio provides the host-side audio primitives that feed the encoder.
//
// This package contains:
//   - Source interface for planar audio input
//   - NewPlanar and Deinterleave for building planar quanta
//   - Format registry for decoder registration
//
// # Source Interface
//
// A Source delivers audio the way a host pipeline delivers quanta: one
// float32 buffer per channel.
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadFrames(dst [][]float32) (int, error)
//	    Close() error
//	}
//
// Reading a quantum of 128 frames:
//
//	quantum := audio.NewPlanar(src.Channels(), 128)
//	n, err := src.ReadFrames(quantum)
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Values outside the range are clipped by the encoder, not by sources.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadFrames(quantum)
//	    // use n frames first
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
