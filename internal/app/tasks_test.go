package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patrickprogramme/lyricsync/internal/config"
	"github.com/patrickprogramme/lyricsync/pkg/model"
)

// stub UI sans interaction pour les tests
type stubUI struct {
	transcript string
	infos      []string
}

func (s *stubUI) GetAudioPath(ctx context.Context) (string, error)  { return "", nil }
func (s *stubUI) GetTranscript(ctx context.Context) (string, error) { return s.transcript, nil }
func (s *stubUI) WaitForExit(ctx context.Context) error             { return nil }
func (s *stubUI) PrintInfo(ctx context.Context, msg string)         { s.infos = append(s.infos, msg) }
func (s *stubUI) PrintError(ctx context.Context, msg string)        {}

func newTestApp(cfg *config.Config, flags *CLIFlags, u *stubUI) *App {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if flags == nil {
		flags = &CLIFlags{}
	}
	if u == nil {
		u = &stubUI{}
	}
	return New(cfg, u, flags)
}

func TestLoadTranscriptFlagTakesPrecedence(t *testing.T) {
	a := newTestApp(nil, &CLIFlags{Text: "direct", TranscriptPath: "ignoré.txt"}, nil)
	got, err := a.LoadTranscript(context.Background())
	if err != nil {
		t.Fatalf("LoadTranscript : %v", err)
	}
	if got != "direct" {
		t.Errorf("texte = %q, attendu %q", got, "direct")
	}
}

func TestLoadTranscriptFromFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "paroles.txt")
	if err := os.WriteFile(p, []byte("\ufeffHello world\n"), 0o644); err != nil {
		t.Fatalf("fixture : %v", err)
	}

	a := newTestApp(nil, &CLIFlags{TranscriptPath: p}, nil)
	got, err := a.LoadTranscript(context.Background())
	if err != nil {
		t.Fatalf("LoadTranscript : %v", err)
	}
	if strings.HasPrefix(got, "\ufeff") {
		t.Errorf("le BOM doit être retiré")
	}
	if strings.TrimSpace(got) != "Hello world" {
		t.Errorf("texte = %q", got)
	}
}

func TestLoadTranscriptAutoModeRequiresSource(t *testing.T) {
	a := newTestApp(&config.Config{AutoMode: true}, &CLIFlags{}, nil)
	if _, err := a.LoadTranscript(context.Background()); err == nil {
		t.Fatalf("erreur attendue en mode auto sans -text/-transcript")
	}
}

func TestLoadTranscriptFallsBackToUI(t *testing.T) {
	a := newTestApp(nil, &CLIFlags{}, &stubUI{transcript: "depuis l'ui"})
	got, err := a.LoadTranscript(context.Background())
	if err != nil {
		t.Fatalf("LoadTranscript : %v", err)
	}
	if got != "depuis l'ui" {
		t.Errorf("texte = %q", got)
	}
}

func TestResolveOutputPathFlagWins(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "sub", "result.mp3")
	a := newTestApp(nil, &CLIFlags{Out: want}, nil)

	got, err := a.ResolveOutputPath("/tmp/source.wav")
	if err != nil {
		t.Fatalf("ResolveOutputPath : %v", err)
	}
	if got != want {
		t.Errorf("chemin = %q, attendu %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("le dossier de sortie doit être créé : %v", err)
	}
}

func TestResolveOutputPathDefaultsToOutputDir(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(&config.Config{OutputDir: dir}, &CLIFlags{}, nil)

	got, err := a.ResolveOutputPath("/musique/Ma Chanson?.mp3")
	if err != nil {
		t.Fatalf("ResolveOutputPath : %v", err)
	}
	if filepath.Dir(got) != dir {
		t.Errorf("dossier = %q, attendu %q", filepath.Dir(got), dir)
	}
	base := filepath.Base(got)
	if !strings.HasSuffix(base, "_sync.mp3") {
		t.Errorf("nom = %q, suffixe _sync.mp3 attendu", base)
	}
	if strings.ContainsAny(base, "?") {
		t.Errorf("nom = %q, caractères invalides non assainis", base)
	}
}

func TestExportLRCWritesFileNextToOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "song_sync.mp3")
	units := []model.TimedWord{
		{Word: "Hello", Start: 0.5, End: 1.5},
		{Word: "world", Start: 1.55, End: 2.5},
	}

	u := &stubUI{}
	a := newTestApp(&config.Config{SaveLRC: true}, &CLIFlags{}, u)
	if err := a.ExportLRC(context.Background(), units, out); err != nil {
		t.Fatalf("ExportLRC : %v", err)
	}

	lrcPath := filepath.Join(dir, "song_sync.lrc")
	data, err := os.ReadFile(lrcPath)
	if err != nil {
		t.Fatalf("lecture LRC : %v", err)
	}
	if !strings.Contains(string(data), "[00:00.50]") {
		t.Errorf("contenu LRC inattendu : %q", string(data))
	}
}

func TestExportLRCDisabledDoesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "song_sync.mp3")
	a := newTestApp(&config.Config{}, &CLIFlags{}, nil)

	if err := a.ExportLRC(context.Background(), []model.TimedWord{{Word: "x", Start: 0, End: 1}}, out); err != nil {
		t.Fatalf("ExportLRC : %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "song_sync.lrc")); !os.IsNotExist(err) {
		t.Errorf("aucun fichier LRC ne doit être écrit quand l'export est désactivé")
	}
}
