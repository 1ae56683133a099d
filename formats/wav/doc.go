// SPDX-License-Identifier: EPL-2.0

// Package wav lays out the canonical 44-byte PCM WAVE header and decodes PCM
// WAV input.
//
// # Header Layout
//
// All multi-byte fields are little-endian; the four chunk tags come from
// github.com/go-audio/riff and read as big-endian words:
//
//	 0  "RIFF"        4  36 + data length   8  "WAVE"
//	12  "fmt "       16  16                20  1 (PCM)
//	22  channels     24  sample rate       28  byte rate
//	32  block align  34  bits per sample
//	36  "data"       40  data length       44  samples...
//
// PutHeader fills a caller-owned buffer so the encoder can build a file in a
// single allocation:
//
//	page := make([]byte, wav.HeaderSize+len(pcm))
//	wav.PutHeader(page, wav.Header{NumChannels: 1, SampleRate: 44100, BitsPerSample: 16, DataLength: len(pcm)})
//	copy(page[wav.HeaderSize:], pcm)
//
// Write streams a header and data buffers to an io.Writer.
//
// # Decoding WAV Files
//
// Decoder reads PCM WAV files of 8, 16, 24 or 32 bits per sample through
// github.com/go-audio/wav and returns an audio.Source of planar float32
// samples in [-1.0, 1.0):
//
//	source, err := wav.Decoder{}.Decode(file)
//	quantum := audio.NewPlanar(source.Channels(), 128)
//	n, err := source.ReadFrames(quantum)
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrOnlyPCMSupported: the fmt chunk is not linear PCM
//   - ErrUnsupportedBitDepth: bit depth outside 8/16/24/32
//   - ErrUnsupportedWavLayout: no usable channel layout
//   - ErrInvalidHeader: a Header field does not fit its slot
package wav
