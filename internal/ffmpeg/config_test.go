package ffmpeg

import (
	"strings"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	cfg := NewConfig()
	args := cfg.BuildArgs("in.wav", "out.mp3")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-i in.wav") {
		t.Fatalf("missing input flag: %v", args)
	}
	if !strings.Contains(joined, "-codec:a libmp3lame") {
		t.Fatalf("missing codec flag: %v", args)
	}
	if !strings.Contains(joined, "-q:a 2") {
		t.Fatalf("missing quality flag: %v", args)
	}
	if args[len(args)-1] != "out.mp3" {
		t.Fatalf("output path must come last: %v", args)
	}
}

func TestBuildArgsMinimal(t *testing.T) {
	cfg := &Config{Codec: "libmp3lame", Quality: 0}
	args := cfg.BuildArgs("a", "b")
	if args[0] != "-i" {
		t.Fatalf("expected -i first without banner/overwrite flags, got %v", args)
	}
}

func TestIsMP3(t *testing.T) {
	cases := map[string]bool{
		"song.mp3":      true,
		"SONG.MP3":      true,
		"/tmp/a.b.mp3":  true,
		"song.wav":      false,
		"song.mp3.flac": false,
		"mp3":           false,
	}
	for path, want := range cases {
		if got := IsMP3(path); got != want {
			t.Fatalf("IsMP3(%q) = %t, expected %t", path, got, want)
		}
	}
}
