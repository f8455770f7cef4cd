package source

import (
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
)

func decodeMP3(rc io.ReadCloser) (*Clip, error) {
	stream, format, err := mp3.Decode(rc)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return drain(stream, format)
}

func decodeFLAC(r io.Reader) (*Clip, error) {
	stream, format, err := flac.Decode(r)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return drain(stream, format)
}

// drain reads a beep stream to the end, keeping the left channel.
func drain(s beep.Streamer, format beep.Format) (*Clip, error) {
	var (
		samples []float64
		buf     [512][2]float64
	)

	for {
		n, ok := s.Stream(buf[:])
		for i := range n {
			samples = append(samples, buf[i][0])
		}
		if !ok {
			break
		}
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return &Clip{
		Samples:    samples,
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
	}, nil
}
