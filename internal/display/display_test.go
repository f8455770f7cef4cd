package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/algo-exciter/dsp/effects/exciter"
	"github.com/cwbudde/algo-exciter/internal/control"
)

func TestStatusFixed(t *testing.T) {
	v := exciter.Values{Gain2: 0.000003, Gain3: 0, Gain5: 0.5, Sensitivity: 0.0001, Enabled: true}
	got := Status(v, control.FixedKeyMap())

	for _, want := range []string{
		"2nd Order: 0.000003 3rd Order: 0.000000",
		"5th Order: 0.500000 Sensitivity: 0.000100",
		"[a/s/z] decrease/increase/reset 2nd",
		"[d/f/c] decrease/increase/reset 3rd",
		"[g/h/b] decrease/increase/reset 5th",
		"[l/;/.] decrease/increase/reset sensitivity",
		"[q] quit",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("status missing %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "injection off") {
		t.Fatal("enabled status should not report injection off")
	}

	if strings.Index(got, "2nd\n") > strings.Index(got, "sensitivity\n") {
		t.Fatal("gain rows should precede sensitivity")
	}
}

func TestStatusAdaptive(t *testing.T) {
	got := Status(exciter.Values{}, control.AdaptiveKeyMap())

	for _, want := range []string{
		"[l/;] decrease/increase sensitivity",
		"[.] toggle harmonic injection",
		"[/] reset adaptive curve",
		"[injection off]",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("status missing %q:\n%s", want, got)
		}
	}
}

func TestSpectrumBars(t *testing.T) {
	mag := []float64{0, 1, 0.001, 0}
	lines := Spectrum(mag, nil, 80, 6)

	if len(lines) != 6 {
		t.Fatalf("rows = %d, want 6", len(lines))
	}

	// Column 1 is the maximum and fills every row.
	for r, line := range lines {
		if len(line) < 2 || line[1] != '|' {
			t.Fatalf("row %d = %q, want full peak column", r, line)
		}
	}

	// -60 dB reaches a third of the height.
	filled := 0
	for _, line := range lines {
		if len(line) > 2 && line[2] == '|' {
			filled++
		}
	}
	if filled != 2 {
		t.Fatalf("column 2 height = %d, want 2", filled)
	}
}

func TestSpectrumCurveMarker(t *testing.T) {
	mag := []float64{0.5, 1}
	curve := []float64{1, 0}
	lines := Spectrum(mag, curve, 10, 4)

	if lines[0][0] != '-' {
		t.Fatalf("top row = %q, want curve marker", lines[0])
	}
}

func TestSpectrumDownsamples(t *testing.T) {
	mag := make([]float64, 256)
	mag[200] = 1

	lines := Spectrum(mag, nil, 32, 3)
	for _, line := range lines {
		if len(line) > 32 {
			t.Fatalf("line wider than 32: %d", len(line))
		}
	}
	if lines[0] != strings.Repeat(" ", 25)+"|" {
		t.Fatalf("top row = %q", lines[0])
	}

	if Spectrum(nil, nil, 10, 10) != nil {
		t.Fatal("empty spectrum should draw nothing")
	}
}

func TestLevel(t *testing.T) {
	l := Level([]float64{0.5, -0.5, 0.5, -0.5})
	if l.RMS != 0.5 || l.Peak != 0.5 {
		t.Fatalf("Level() = %+v", l)
	}
	if db := l.PeakdB(); db > -6.0 || db < -6.1 {
		t.Fatalf("PeakdB() = %g", db)
	}
	if (Levels{}).RMSdB() != floorDB {
		t.Fatal("silence should report the floor")
	}
	if c := l.Crest(); c != 1 {
		t.Fatalf("Crest() = %g, want 1", c)
	}
	if (Levels{}).Crest() != 0 {
		t.Fatal("silence should have zero crest")
	}
}

func TestCentroid(t *testing.T) {
	if c := Centroid([]float64{0, 0, 1, 0, 0}, 100); c != 200 {
		t.Fatalf("Centroid() = %g, want 200", c)
	}
	if c := Centroid([]float64{0, 1, 0, 1, 0}, 100); c != 200 {
		t.Fatalf("symmetric Centroid() = %g, want 200", c)
	}
	if Centroid(make([]float64, 5), 100) != 0 {
		t.Fatal("silent spectrum should have zero centroid")
	}
	if Centroid(nil, 100) != 0 {
		t.Fatal("empty spectrum should have zero centroid")
	}
}

func TestDrawWritesStatusAndView(t *testing.T) {
	g := exciter.NewSnapshot(8, 4, 2)
	p := exciter.NewParams(exciter.DefaultFixedSensitivity)

	var buf bytes.Buffer
	d := New(&buf, -1, control.FixedKeyMap(), p, g, true)
	d.SetBinWidth(8000.0 / 16)

	if w, h := d.Size(); w != defaultWidth || h != defaultHeight {
		t.Fatalf("Size() = %dx%d", w, h)
	}

	if err := d.Draw(); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, clearScreen) {
		t.Fatal("Draw should clear the screen first")
	}
	if !strings.Contains(out, "2nd Order") || !strings.Contains(out, "out rms") ||
		!strings.Contains(out, "centroid") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
