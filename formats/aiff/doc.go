// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF (Audio Interchange File Format)
// files into planar float32 frames.
//
// Parsing is done by github.com/go-audio/aiff, which needs an
// io.ReadSeeker; other readers are buffered in memory first. AIFF stores
// big-endian signed samples at every depth, so an 8-bit file is scaled the
// same way as a 16-bit one, just with a smaller divisor.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF file
//	}
//	dst := audio.NewPlanar(src.Channels(), 128)
//	n, err := src.ReadFrames(dst)
//
// Supported sample sizes are 8, 16, 24 and 32 bits.
package aiff
