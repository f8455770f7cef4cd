package source

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-exciter/internal/testutil"
)

func TestLoopWrapsWithoutGap(t *testing.T) {
	const m = 10

	l, err := NewLoop(testutil.Ramp(m))
	if err != nil {
		t.Fatalf("NewLoop() error = %v", err)
	}

	dst := make([]float64, m+4)
	l.Read(dst)

	for i, v := range dst {
		if want := float64(i % m); v != want {
			t.Fatalf("dst[%d] = %g, want %g", i, v, want)
		}
	}

	if l.Pos() != 4 {
		t.Fatalf("Pos() = %d, want 4", l.Pos())
	}
}

func TestLoopReadLongerThanClip(t *testing.T) {
	l, err := NewLoop([]float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	dst := make([]float64, 8)
	l.Read(dst)

	want := []float64{1, 2, 3, 1, 2, 3, 1, 2}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestLoopFillOverlapsByHop(t *testing.T) {
	const (
		m      = 37
		buffer = 16
		hop    = 4
	)

	l, err := NewLoop(testutil.Ramp(m))
	if err != nil {
		t.Fatal(err)
	}

	block := make([]float64, buffer+hop)
	next := 0

	for b := range 20 {
		l.Fill(block, hop)

		for i, v := range block {
			if want := float64((next + i) % m); v != want {
				t.Fatalf("block %d sample %d = %g, want %g", b, i, v, want)
			}
		}

		next = (next + buffer) % m
	}
}

func TestLoopRewindWraps(t *testing.T) {
	l, err := NewLoop(testutil.Ramp(5))
	if err != nil {
		t.Fatal(err)
	}

	l.Rewind(2)
	if l.Pos() != 3 {
		t.Fatalf("Pos() = %d, want 3", l.Pos())
	}

	l.Rewind(11)
	if l.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", l.Pos())
	}
}

func TestNewLoopEmpty(t *testing.T) {
	if _, err := NewLoop(nil); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("NewLoop(nil) error = %v, want ErrEmptySource", err)
	}
}
