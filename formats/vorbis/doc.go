// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into planar float32 frames.
//
// It is a thin adapter over github.com/jfreymuth/oggvorbis. The library
// already produces float32 values in [-1.0, 1.0]; the source only splits
// them per channel:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	dst := audio.NewPlanar(src.Channels(), 128)
//	n, err := src.ReadFrames(dst)
//
// Sample rate and channel count are taken from the stream header.
package vorbis
