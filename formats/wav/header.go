// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
)

const (
	// HeaderSize is the length of the canonical PCM WAVE header.
	HeaderSize = 44

	// FormatPCM is the fmt chunk audio format for linear PCM.
	FormatPCM = 1

	fmtChunkSize = 16
	// riffOverhead is what ChunkSize counts besides the data: "WAVE", the fmt
	// chunk with its 8-byte chunk header, and the data chunk header.
	riffOverhead = HeaderSize - 8
)

// Header describes a canonical 44-byte PCM WAVE header.
type Header struct {
	NumChannels   int
	SampleRate    int
	BitsPerSample int
	// DataLength is the size of the data chunk payload in bytes.
	DataLength int
}

// BlockAlign is the size in bytes of one frame across all channels.
func (h Header) BlockAlign() int { return h.NumChannels * (h.BitsPerSample / 8) }

// ByteRate is the number of data bytes per second of audio.
func (h Header) ByteRate() int { return h.SampleRate * h.BlockAlign() }

// Validate reports whether every field fits its slot in the header.
func (h Header) Validate() error {
	switch {
	case h.NumChannels < 1 || h.NumChannels > math.MaxUint16:
		return fmt.Errorf("%w: %d channels", ErrInvalidHeader, h.NumChannels)
	case h.SampleRate < 1 || h.SampleRate > math.MaxUint32:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidHeader, h.SampleRate)
	case h.BitsPerSample < 8 || h.BitsPerSample%8 != 0 || h.BitsPerSample > math.MaxUint16:
		return fmt.Errorf("%w: %d bits per sample", ErrInvalidHeader, h.BitsPerSample)
	case h.BlockAlign() > math.MaxUint16:
		return fmt.Errorf("%w: block align %d", ErrInvalidHeader, h.BlockAlign())
	case h.ByteRate() > math.MaxUint32:
		return fmt.Errorf("%w: byte rate %d", ErrInvalidHeader, h.ByteRate())
	case h.DataLength < 0:
		return fmt.Errorf("%w: data length %d", ErrInvalidHeader, h.DataLength)
	}

	return nil
}

// PutHeader encodes h into dst[:HeaderSize]. It panics if dst is shorter
// than HeaderSize. Size fields are stored modulo 2^32.
func PutHeader(dst []byte, h Header) {
	_ = dst[HeaderSize-1]

	// RIFF header (12 bytes)
	copy(dst[0:4], riff.RiffID[:])
	binary.LittleEndian.PutUint32(dst[4:8], uint32(riffOverhead+h.DataLength))
	copy(dst[8:12], riff.WavFormatID[:])

	// fmt chunk (24 bytes)
	copy(dst[12:16], riff.FmtID[:])
	binary.LittleEndian.PutUint32(dst[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(dst[20:22], FormatPCM)
	binary.LittleEndian.PutUint16(dst[22:24], uint16(h.NumChannels))
	binary.LittleEndian.PutUint32(dst[24:28], uint32(h.SampleRate))
	binary.LittleEndian.PutUint32(dst[28:32], uint32(h.ByteRate()))
	binary.LittleEndian.PutUint16(dst[32:34], uint16(h.BlockAlign()))
	binary.LittleEndian.PutUint16(dst[34:36], uint16(h.BitsPerSample))

	// data chunk header (8 bytes)
	copy(dst[36:40], riff.DataFormatID[:])
	binary.LittleEndian.PutUint32(dst[40:44], uint32(h.DataLength))
}

// WriteHeader writes the 44-byte header for h to w.
func WriteHeader(w io.Writer, h Header) error {
	var header [HeaderSize]byte
	PutHeader(header[:], h)

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	return nil
}

// Write writes a complete WAVE file: a header whose DataLength is the total
// size of data, followed by each data buffer in order.
func Write(w io.Writer, h Header, data ...[]byte) error {
	h.DataLength = 0
	for _, d := range data {
		h.DataLength += len(d)
	}

	if err := h.Validate(); err != nil {
		return err
	}

	if err := WriteHeader(w, h); err != nil {
		return err
	}

	for _, d := range data {
		if _, err := w.Write(d); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}
