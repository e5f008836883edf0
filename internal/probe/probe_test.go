package probe

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// en-tête MPEG-1 Layer III : 128 kbps, 44100 Hz, sans padding
var validHeader = []byte{0xFF, 0xFB, 0x90, 0x00}

// helper : fabrique n trames synthétiques valides
func makeFrames(n int) []byte {
	h, err := parseFrameHeader(validHeader)
	if err != nil {
		panic(err)
	}
	size := h.frameSize()
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		buf.Write(validHeader)
		buf.Write(make([]byte, size-4))
	}
	return buf.Bytes()
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probe.mp3")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestParseFrameHeader(t *testing.T) {
	h, err := parseFrameHeader(validHeader)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if h.bitrate != 128000 || h.sampleRate != 44100 || h.padding != 0 {
		t.Fatalf("unexpected header: %+v", h)
	}
	// 144 * 128000 / 44100 = 417 (division entière)
	if h.frameSize() != 417 {
		t.Fatalf("expected frame size 417, got %d", h.frameSize())
	}

	if _, err := parseFrameHeader([]byte{0x00, 0x00, 0x00, 0x00}); err == nil {
		t.Fatal("expected error for missing frame sync")
	}
}

func TestDurationCountsFrames(t *testing.T) {
	const frames = 100
	path := writeTemp(t, makeFrames(frames))

	got, err := Duration(path)
	if err != nil {
		t.Fatalf("duration failed: %v", err)
	}
	want := float64(frames) * 1152.0 / 44100.0
	if math.Abs(got-want) > 0.001 {
		t.Fatalf("expected %.3fs, got %.3fs", want, got)
	}
}

func TestDurationSkipsID3Tag(t *testing.T) {
	// tag ID3v2 de 64 octets de padding devant les trames
	tag := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 64}, make([]byte, 64)...)
	path := writeTemp(t, append(tag, makeFrames(10)...))

	got, err := Duration(path)
	if err != nil {
		t.Fatalf("duration failed: %v", err)
	}
	want := 10 * 1152.0 / 44100.0
	if math.Abs(got-want) > 0.001 {
		t.Fatalf("expected %.3fs, got %.3fs", want, got)
	}
}

func TestDurationNoValidFrames(t *testing.T) {
	path := writeTemp(t, []byte("ceci n'est pas un mp3"))
	if _, err := Duration(path); err == nil {
		t.Fatal("expected error for non-mp3 content")
	}
}

func TestDurationMissingFile(t *testing.T) {
	if _, err := Duration(filepath.Join(t.TempDir(), "absent.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
