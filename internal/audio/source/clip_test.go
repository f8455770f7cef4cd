package source

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeWAV(t *testing.T, path string, rate, channels int, data []int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenWAVStereoKeepsLeft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")

	// Left ramps up, right is a constant that must not leak through.
	data := make([]int, 0, 200)
	for i := range 100 {
		data = append(data, i*100, -12345)
	}
	writeWAV(t, path, 22050, 2, data)

	clip, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if clip.Format != FormatWAV || clip.Channels != 2 || clip.SampleRate != 22050 {
		t.Fatalf("clip = %+v", clip)
	}
	if clip.Frames() != 100 {
		t.Fatalf("Frames() = %d, want 100", clip.Frames())
	}

	for i, v := range clip.Samples {
		want := float64(i*100) / 32768
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("sample %d = %g, want %g", i, v, want)
		}
	}

	if got := clip.Seconds(); math.Abs(got-100.0/22050) > 1e-12 {
		t.Fatalf("Seconds() = %g", got)
	}
}

func TestOpenEmptyWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	writeWAV(t, path, 44100, 1, nil)

	if _, err := Open(path); err == nil {
		t.Fatal("expected error for empty clip")
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Open(filepath.Join(dir, "clip.aiff")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Open(.aiff) error = %v, want ErrUnsupportedFormat", err)
	}

	if _, err := Open(filepath.Join(dir, "missing.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}

	junk := filepath.Join(dir, "junk.wav")
	if err := os.WriteFile(junk, []byte("not a wav file at all"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(junk); err == nil {
		t.Fatal("expected error for invalid WAV")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.wav":      FormatWAV,
		"b.WAV":      FormatWAV,
		"c.opus":     FormatOpus,
		"d.ogg":      FormatOpus,
		"e.mp3":      FormatMP3,
		"dir/f.flac": FormatFLAC,
		"g.tar.FLAC": FormatFLAC,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		if err != nil || got != want {
			t.Fatalf("DetectFormat(%q) = %q, %v; want %q", path, got, err, want)
		}
	}

	if _, err := DetectFormat("noext"); err == nil {
		t.Fatal("expected error without extension")
	}
}

func TestOpusChannels(t *testing.T) {
	// Ogg page header, then OpusHead: version 1, 2 channels, pre-skip 312.
	head := append([]byte("OggS\x00\x02"), make([]byte, 22)...)
	head = append(head, "OpusHead\x01\x02\x38\x01"...)

	if ch, err := opusChannels(head); err != nil || ch != 2 {
		t.Fatalf("opusChannels() = %d, %v; want 2", ch, err)
	}

	bad := map[string][]byte{
		"missing":   []byte("OggS not opus"),
		"truncated": []byte("OpusHead\x01"),
		"zero":      []byte("OpusHead\x01\x00\x00\x00"),
	}
	for name, data := range bad {
		if _, err := opusChannels(data); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestOpenInvalidOpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.opus")
	if err := os.WriteFile(path, []byte("not an ogg stream"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("expected error for invalid Opus file")
	}
}
