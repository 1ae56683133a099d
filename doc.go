// SPDX-License-Identifier: EPL-2.0

// Package wavepcm records floating-point audio into PCM WAVE files.
//
// Audio flows through three layers:
//
//   - encoder quantizes planar float32 quanta to 8, 16, 24 or 32-bit PCM
//     and wraps them in a 44-byte RIFF/WAVE header.
//   - protocol drives an encoder from host commands (init, getBuffer, done,
//     close) and posts ready, postBuffer, page and done messages back.
//   - this package feeds any audio.Source through a protocol sink.
//
// # Supported Inputs
//
// Sources come from the format decoders:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//
// Sample rate and channel layout are kept as decoded. There is no
// resampling or mixing.
//
// # Quick Start
//
//	src, _ := wav.Decoder{}.Decode(file)
//	data, err := wavepcm.Encode(src, wavepcm.Options{BitDepth: 24})
//
// For long recordings Stream writes header-less PCM as it goes:
//
//	n, err := wavepcm.Stream(ctx, src, wavepcm.Options{FlushEvery: 32}, out)
//
// go-audio users can encode an interleaved *audio.Float32Buffer directly
// with EncodeBuffer.
package wavepcm
