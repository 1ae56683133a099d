package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ik5/wavepcm/audio"
	"github.com/ik5/wavepcm/formats/aiff"
	"github.com/ik5/wavepcm/formats/mp3"
	"github.com/ik5/wavepcm/formats/vorbis"
	"github.com/ik5/wavepcm/formats/wav"
)

func newRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

// decoderFor picks a decoder by file extension.
func decoderFor(reg *audio.Registry, path string) (audio.Decoder, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (supported: %s)", ext, strings.Join(reg.Formats(), ", "))
	}

	return dec, nil
}
