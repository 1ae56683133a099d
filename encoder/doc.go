// SPDX-License-Identifier: EPL-2.0

// Package encoder turns planar float32 audio quanta into linear PCM and
// wraps the accumulated data in a canonical WAVE container.
//
// An Encoder is built from a Config and then fed one quantum at a time:
//
//	enc, err := encoder.New(encoder.Config{SampleRate: 48000, BitDepth: 16, NumberOfChannels: 2})
//	if err != nil {
//	    return err
//	}
//	for quantum := range quanta {
//	    if err := enc.Record(quantum); err != nil {
//	        return err
//	    }
//	}
//	file, ok := enc.RequestData()
//
// # Quantization
//
// Samples are clipped to [-1.0, 1.0] and scaled at double precision with
// truncation toward zero:
//
//	32-bit  s*2147483647.5 - 0.5   signed, little-endian
//	24-bit  s*8388607.5 - 0.5      signed, little-endian, 3 bytes
//	16-bit  s*32767.5 - 0.5        signed, little-endian
//	 8-bit  (s+1)*127.5            unsigned
//
// Silence therefore encodes as 0x7F at 8 bits and as zero bytes otherwise,
// and NaN encodes as zero bytes at every depth.
//
// # Delivery
//
// RequestData serializes everything recorded so far behind a 44-byte
// header and keeps the buffered quanta. RequestDataWithoutHeader hands the
// buffered PCM over and empties the encoder, which is the incremental path
// for long recordings.
//
// An Encoder is not safe for concurrent use.
package encoder
