package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/lyricsync/internal/config"
	"github.com/patrickprogramme/lyricsync/internal/embedder"
	"github.com/patrickprogramme/lyricsync/internal/ffmpeg"
	"github.com/patrickprogramme/lyricsync/internal/fsutil"
	"github.com/patrickprogramme/lyricsync/internal/timing"
	"github.com/patrickprogramme/lyricsync/internal/ui"
	"github.com/patrickprogramme/lyricsync/pkg/model"
)

const (
	defaultUpdateTimeout = 15 * time.Second
	dirPerm              = 0o755
)

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath     string
	In             string  // fichier audio source
	Text           string  // paroles passées directement en argument
	TranscriptPath string  // fichier texte contenant les paroles
	Out            string  // chemin du MP3 embarqué
	Duration       float64 // durée forcée en secondes (0 = sonder le fichier)
	LrcPath        string  // chemin d'export LRC (vide = selon config)
	FfmpegPath     string
	Auto           bool
}

// App orchestre les différentes dépendances (UI, ffmpeg, FS...)
type App struct {
	cfg   *config.Config
	ui    ui.Interface
	flags *CLIFlags
	conv  ffmpeg.Interface // **présent** : client ffmpeg initialisé dans Run
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags) *App {
	return &App{
		cfg:   cfg,
		ui:    uiClient,
		flags: flags,
	}
}

// Run exécute le flux principal : audio -> texte -> allocation -> embarquement
// -> export LRC. Il initialise conv (via InitFfmpeg) en utilisant le ctx,
// ainsi l'initialisation respecte annulation/signaux.
func (a *App) Run(ctx context.Context) error {
	// si l'utilisateur a passé --ffmpeg-path, l'appliquer et re-résoudre
	if a.flags.FfmpegPath != "" {
		a.cfg.Ffmpeg.Path = a.flags.FfmpegPath
		a.cfg.ResolveFfmpegPath()
	}

	// Init ffmpeg (CheckBinary + version) ; l'absence n'est pas fatale
	conv, version, warnings := a.initConverter(ctx)
	a.conv = conv
	for _, w := range warnings {
		a.ui.PrintError(ctx, "warning: "+w)
	}
	if version != "" {
		a.ui.PrintInfo(ctx, fmt.Sprintf("ffmpeg détecté: %s", version))
	}

	// Vérification des builds ffmpeg (optionnel, jamais fatal)
	if a.cfg.Ffmpeg.AutoVersionCheck {
		if err := a.FfmpegBuildCheck(ctx, defaultUpdateTimeout, version); err != nil {
			a.ui.PrintError(ctx, err.Error())
		}
	}

	// Récupération du fichier audio : priorité flag > clipboard > prompt
	audioPath := a.flags.In
	if audioPath == "" {
		if a.cfg.AutoMode {
			return fmt.Errorf("mode auto: le flag -in est obligatoire")
		}
		p, err := a.ui.GetAudioPath(ctx)
		if err != nil {
			return fmt.Errorf("get audio path: %w", err)
		}
		audioPath = p
	}
	if _, err := os.Stat(audioPath); err != nil {
		return fmt.Errorf("fichier audio: %w", err)
	}

	// Récupération du texte : flag > fichier > clipboard/prompt
	rawText, err := a.LoadTranscript(ctx)
	if err != nil {
		return err
	}
	fullText := timing.CleanText(rawText)
	words := timing.Words(fullText)
	if len(words) == 0 {
		return fmt.Errorf("aucun mot exploitable dans le texte fourni")
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("%d mots à synchroniser", len(words)))

	// Préparation de l'audio + résolution de la durée
	srcPath, duration, cleanup, err := a.PrepareAudio(ctx, audioPath)
	if err != nil {
		return err
	}
	defer cleanup()

	// Allocation des timestamps puis validation. La fusion des
	// quasi-collisions est réservée à l'affichage : le flux SYLT reste
	// mot-à-mot, une entrée par mot du transcript.
	// Durée inconnue => pas d'allocation possible, embarquement USLT seul.
	var units []model.TimedWord
	if duration > 0 {
		a.ui.PrintInfo(ctx, fmt.Sprintf("durée: %.2fs", duration))
		units = timing.Allocate(words, duration)
		units = timing.Validate(units, duration)
		a.PreviewLines(ctx, units)
	} else {
		a.ui.PrintError(ctx, "warning: durée inconnue, embarquement USLT seul (passez -duration pour synchroniser)")
	}

	// préparation dossier + chemin de sortie
	outPath, err := a.ResolveOutputPath(audioPath)
	if err != nil {
		return err
	}

	// Embarquement SYLT/USLT + vérification
	emb := embedder.New(a.conv, a.cfg.Language)
	res, err := emb.Embed(ctx, embedder.Request{
		AudioPath:  srcPath,
		Units:      units,
		FullText:   fullText,
		OutputPath: outPath,
	})
	for _, line := range res.Logs {
		a.ui.PrintInfo(ctx, line)
	}
	if err != nil {
		return fmt.Errorf("embarquement: %w", err)
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("MP3 embarqué écrit dans:\n%s", res.OutputPath))

	// Export LRC (fichier et/ou presse-papier)
	if err := a.ExportLRC(ctx, units, outPath); err != nil {
		return err
	}

	if a.cfg.AutoMode {
		return nil
	}
	// Attendre terminaison (Ctrl+C) via UI
	return a.ui.WaitForExit(ctx)
}

// initConverter résout le binaire ffmpeg et collecte les avertissements de
// présence, sans jamais échouer.
func (a *App) initConverter(ctx context.Context) (ffmpeg.Interface, string, []string) {
	warnings, _ := a.cfg.ValidateFfmpegPresence()
	conv, version := ffmpeg.InitFfmpeg(ctx, a.cfg)
	return conv, version, warnings
}

// ResolveOutputPath détermine le chemin du MP3 de sortie : flag -out
// prioritaire, sinon OutputDir + nom source assaini suffixé "_sync".
func (a *App) ResolveOutputPath(audioPath string) (string, error) {
	if a.flags.Out != "" {
		if dir := filepath.Dir(a.flags.Out); dir != "." {
			if err := os.MkdirAll(dir, dirPerm); err != nil {
				return "", fmt.Errorf("create out dir: %w", err)
			}
		}
		return a.flags.Out, nil
	}

	outDir := a.cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}

	base := filepath.Base(audioPath)
	base = base[:len(base)-len(filepath.Ext(base))]
	name := fsutil.SanitizeFilename(base) + "_sync.mp3"
	return filepath.Join(outDir, name), nil
}
