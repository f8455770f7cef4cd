package sink

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
)

const wavBitDepth = 16

// WAV renders a fixed length of output into a 16-bit mono PCM file.
type WAV struct {
	Path    string
	Seconds float64
	log     logrus.FieldLogger
}

// Run renders Seconds of audio, or less if ctx is cancelled first.
func (w *WAV) Run(ctx context.Context, r Renderer) error {
	rate := int(r.SampleRate())
	total := int(math.Ceil(w.Seconds * r.SampleRate()))

	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("sink: output file creation error: %w", err)
	}
	defer f.Close()

	encoder := wav.NewEncoder(f, rate, wavBitDepth, 1, 1)

	block := make([]float32, r.BufferSize())
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, len(block)),
		SourceBitDepth: wavBitDepth,
	}

	written := 0
	for written < total {
		if ctx.Err() != nil {
			break
		}

		r.Render(block)

		n := min(len(block), total-written)
		buf.Data = buf.Data[:n]
		for i := range n {
			buf.Data[i] = toPCM16(block[i])
		}

		if err := encoder.Write(buf); err != nil {
			return fmt.Errorf("sink: data writing error: %w", err)
		}

		written += n
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("sink: finalize wav: %w", err)
	}

	w.log.WithFields(logrus.Fields{
		"path":    w.Path,
		"frames":  written,
		"seconds": float64(written) / r.SampleRate(),
	}).Info("render complete")

	return nil
}

func toPCM16(v float32) int {
	x := math.Round(float64(v) * math.MaxInt16)
	return int(max(math.MinInt16, min(math.MaxInt16, x)))
}
