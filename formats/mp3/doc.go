// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into planar float32 frames.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always yields
// interleaved 16-bit stereo. The source splits it per channel and scales
// each sample into [-1.0, 1.0):
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	dst := audio.NewPlanar(src.Channels(), 128)
//	n, err := src.ReadFrames(dst)
//
// Output is always two channels at the stream's own sample rate.
// MP3 encoding is not supported.
package mp3
