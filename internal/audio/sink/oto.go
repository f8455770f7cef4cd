package sink

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hajimehoshi/oto/v2"
	"github.com/sirupsen/logrus"
)

// Oto plays through oto's pull model: the player reads PCM bytes from an
// io.Reader that renders whole buffers on demand.
type Oto struct {
	log logrus.FieldLogger
}

// Run opens an oto context and plays until ctx is cancelled.
func (o *Oto) Run(ctx context.Context, r Renderer) error {
	otoCtx, ready, err := oto.NewContext(int(r.SampleRate()), 1, oto.FormatFloat32LE)
	if err != nil {
		return fmt.Errorf("sink: oto context: %w", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return nil
	}

	player := otoCtx.NewPlayer(newPCMReader(r))
	player.Play()

	o.log.WithFields(logrus.Fields{
		"backend":     KindOto,
		"sample_rate": r.SampleRate(),
		"buffer":      r.BufferSize(),
	}).Info("stream started")

	<-ctx.Done()

	player.Pause()
	if err := player.Close(); err != nil {
		o.log.WithError(err).Warn("player close failed")
	}

	return nil
}

// pcmReader serves rendered audio as float32 little-endian bytes.
type pcmReader struct {
	r   Renderer
	f32 []float32
	buf []byte
	off int
}

func newPCMReader(r Renderer) *pcmReader {
	n := r.BufferSize()
	return &pcmReader{
		r:   r,
		f32: make([]float32, n),
		buf: make([]byte, 4*n),
		off: 4 * n,
	}
}

// Read never fails; the source loops forever.
func (p *pcmReader) Read(b []byte) (int, error) {
	if p.off == len(p.buf) {
		p.r.Render(p.f32)
		for i, v := range p.f32 {
			binary.LittleEndian.PutUint32(p.buf[4*i:], math.Float32bits(v))
		}
		p.off = 0
	}

	n := copy(b, p.buf[p.off:])
	p.off += n

	return n, nil
}
