// SPDX-License-Identifier: EPL-2.0

package audio

// NewPlanar allocates one zeroed buffer of frames samples per channel, backed
// by a single allocation.
func NewPlanar(channels, frames int) [][]float32 {
	backing := make([]float32, channels*frames)
	planar := make([][]float32, channels)
	for c := range channels {
		planar[c] = backing[c*frames : (c+1)*frames : (c+1)*frames]
	}

	return planar
}

// FrameCapacity is the number of frames every buffer in dst can hold.
func FrameCapacity(dst [][]float32) int {
	if len(dst) == 0 {
		return 0
	}

	frames := len(dst[0])
	for _, ch := range dst[1:] {
		frames = min(frames, len(ch))
	}

	return frames
}

// Deinterleave splits interleaved samples from src into dst, one buffer per
// channel, and returns the number of whole frames copied. A trailing partial
// frame in src is dropped.
func Deinterleave(dst [][]float32, src []float32) (int, error) {
	channels := len(dst)
	if channels == 0 {
		return 0, ErrInvalidDstSize
	}

	frames := min(len(src)/channels, FrameCapacity(dst))

	switch channels {
	case 1:
		copy(dst[0], src[:frames])
	case 2:
		left, right := dst[0], dst[1]
		for f := range frames {
			idx := f << 1
			left[f] = src[idx]
			right[f] = src[idx+1]
		}
	default:
		for f := range frames {
			base := f * channels
			for c := range channels {
				dst[c][f] = src[base+c]
			}
		}
	}

	return frames, nil
}
