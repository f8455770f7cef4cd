package source

import (
	"errors"
	"io"

	"github.com/go-audio/wav"
)

func decodeWAV(r io.ReadSeeker) (*Clip, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, errors.New("invalid channel count")
	}

	bits := int(buf.SourceBitDepth)
	if bits <= 0 {
		bits = int(decoder.BitDepth)
	}
	if bits <= 0 || bits > 32 {
		return nil, errors.New("invalid bit depth")
	}

	scale := 1 / float64(int64(1)<<(bits-1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = float64(buf.Data[i*channels]) * scale
	}

	return &Clip{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
	}, nil
}
