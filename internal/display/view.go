package display

import (
	"math"
	"strings"
)

const floorDB = -90.0

// Spectrum draws mag as vertical bars, rows high and at most width columns
// wide. Each column shows the loudest bin it covers, in dB relative to the
// frame maximum. When curve is non-nil its level is marked with '-'.
func Spectrum(mag, curve []float64, width, rows int) []string {
	if len(mag) == 0 || width <= 0 || rows <= 0 {
		return nil
	}

	cols := min(width, len(mag))

	peak := 0.0
	for _, m := range mag {
		peak = math.Max(peak, m)
	}

	heights := make([]int, cols)
	marks := make([]int, cols)

	for c := range cols {
		lo := c * len(mag) / cols
		hi := max(lo+1, (c+1)*len(mag)/cols)

		colMax := 0.0
		curveMax := -1.0
		for j := lo; j < hi; j++ {
			colMax = math.Max(colMax, mag[j])
			if curve != nil && j < len(curve) {
				curveMax = math.Max(curveMax, curve[j])
			}
		}

		heights[c] = barHeight(colMax, peak, rows)
		marks[c] = -1
		if curveMax >= 0 {
			// The curve is already relative to the frame maximum.
			marks[c] = barHeight(curveMax, 1, rows)
		}
	}

	lines := make([]string, rows)
	row := make([]byte, cols)

	for r := range rows {
		level := rows - r
		for c := range cols {
			switch {
			case marks[c] == level:
				row[c] = '-'
			case heights[c] >= level:
				row[c] = '|'
			default:
				row[c] = ' '
			}
		}
		lines[r] = strings.TrimRight(string(row), " ")
	}

	return lines
}

func barHeight(v, ref float64, rows int) int {
	if v <= 0 || ref <= 0 {
		return 0
	}

	db := 20 * math.Log10(v/ref)
	if db <= floorDB {
		return 0
	}

	return max(1, int(math.Round(float64(rows)*(1-db/floorDB))))
}

// Levels summarizes a buffer.
type Levels struct {
	RMS  float64
	Peak float64
}

// Level measures RMS and absolute peak of x.
func Level(x []float64) Levels {
	if len(x) == 0 {
		return Levels{}
	}

	var sum, peak float64
	for _, v := range x {
		sum += v * v
		peak = math.Max(peak, math.Abs(v))
	}

	return Levels{RMS: math.Sqrt(sum / float64(len(x))), Peak: peak}
}

// RMSdB returns the RMS level in dBFS, floored at -90.
func (l Levels) RMSdB() float64 { return toDB(l.RMS) }

// PeakdB returns the peak level in dBFS, floored at -90.
func (l Levels) PeakdB() float64 { return toDB(l.Peak) }

// Crest returns peak over RMS, or 0 for silence.
func (l Levels) Crest() float64 {
	if l.RMS == 0 {
		return 0
	}
	return l.Peak / l.RMS
}

// Centroid returns the magnitude-weighted mean frequency of mag, where
// bin i sits at i*binHz. A silent spectrum yields 0.
func Centroid(mag []float64, binHz float64) float64 {
	var sum, weighted float64
	for i, m := range mag {
		sum += m
		weighted += float64(i) * m
	}
	if sum == 0 {
		return 0
	}

	return weighted / sum * binHz
}

func toDB(v float64) float64 {
	if v <= 0 {
		return floorDB
	}
	return math.Max(floorDB, 20*math.Log10(v))
}
