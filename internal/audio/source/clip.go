package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("source: unsupported format")

// Format names a container/codec the package can decode.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatOpus Format = "opus"
	FormatMP3  Format = "mp3"
	FormatFLAC Format = "flac"
)

// Clip is a fully decoded, mono audio clip.
type Clip struct {
	Samples    []float64
	SampleRate int
	// Channels is the channel count of the file; Samples holds the first.
	Channels int
	Format   Format
}

// Frames returns the clip length in samples.
func (c *Clip) Frames() int { return len(c.Samples) }

// Seconds returns the clip duration.
func (c *Clip) Seconds() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV, nil
	case ".opus", ".ogg", ".oga":
		return FormatOpus, nil
	case ".mp3":
		return FormatMP3, nil
	case ".flac":
		return FormatFLAC, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Open decodes the whole file at path into memory.
func Open(path string) (*Clip, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: could not open file: %w", err)
	}
	defer f.Close()

	var clip *Clip

	switch format {
	case FormatWAV:
		clip, err = decodeWAV(f)
	case FormatOpus:
		clip, err = decodeOpus(f)
	case FormatMP3:
		clip, err = decodeMP3(f)
	case FormatFLAC:
		clip, err = decodeFLAC(f)
	}

	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", format, err)
	}

	if len(clip.Samples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, path)
	}

	clip.Format = format

	return clip, nil
}
