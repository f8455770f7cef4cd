package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/hraban/opus.v2"
)

const (
	opusSampleRate = 48000
	// 120 ms at 48 kHz, the longest packet Opus allows.
	opusMaxPacketSamples = 5760
)

var opusHeadMagic = []byte("OpusHead")

// opusChannels reads the channel count from the OpusHead packet. opusfile
// decodes interleaved audio but does not report the layout.
func opusChannels(data []byte) (int, error) {
	i := bytes.Index(data, opusHeadMagic)
	if i < 0 || i+10 > len(data) {
		return 0, errors.New("missing OpusHead")
	}

	channels := int(data[i+9])
	if channels < 1 {
		return 0, errors.New("invalid channel count in OpusHead")
	}

	return channels, nil
}

// decodeOpus decodes an Ogg Opus stream at 48 kHz. opusfile applies the
// pre-skip.
func decodeOpus(r io.Reader) (*Clip, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	channels, err := opusChannels(data)
	if err != nil {
		return nil, err
	}

	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open opus stream: %w", err)
	}
	defer stream.Close()

	pcm := make([]float32, opusMaxPacketSamples*channels)

	var samples []float64

	for {
		n, err := stream.ReadFloat32(pcm)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		for i := range n {
			samples = append(samples, float64(pcm[i*channels]))
		}
	}

	return &Clip{
		Samples:    samples,
		SampleRate: opusSampleRate,
		Channels:   channels,
	}, nil
}
