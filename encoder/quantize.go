// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"encoding/binary"

	"github.com/ik5/wavepcm/utils"
)

// putFunc writes one clipped sample into dst, which is exactly one
// sample wide.
type putFunc func(dst []byte, s float64)

func put32(dst []byte, s float64) {
	binary.LittleEndian.PutUint32(dst, uint32(int32(s*2147483647.5-0.5)))
}

func put24(dst []byte, s float64) {
	v := uint32(int32(s*8388607.5 - 0.5))
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
}

func put16(dst []byte, s float64) {
	binary.LittleEndian.PutUint16(dst, uint16(int16(int32(s*32767.5-0.5))))
}

func put8(dst []byte, s float64) {
	dst[0] = uint8((s + 1) * 127.5)
}

func quantizer(bytesPerSample int) (putFunc, error) {
	switch bytesPerSample {
	case 4:
		return put32, nil
	case 3:
		return put24, nil
	case 2:
		return put16, nil
	case 1:
		return put8, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// quantizeInto interleaves the first len(dst)/width/len(buffers) frames of
// buffers into dst.
func quantizeInto(dst []byte, buffers [][]float32, width int, put putFunc) {
	channels := len(buffers)
	frames := len(dst) / (width * channels)

	off := 0
	for i := range frames {
		for ch := range channels {
			s, ok := utils.Clamp(buffers[ch][i])
			if ok {
				put(dst[off:off+width], s)
			} else {
				clear(dst[off : off+width])
			}
			off += width
		}
	}
}
