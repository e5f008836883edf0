package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/patrickprogramme/lyricsync/internal/clipboard"
	"github.com/patrickprogramme/lyricsync/internal/ffmpeg"
	"github.com/patrickprogramme/lyricsync/internal/fsutil"
	"github.com/patrickprogramme/lyricsync/internal/lrc"
	"github.com/patrickprogramme/lyricsync/internal/probe"
	"github.com/patrickprogramme/lyricsync/internal/timing"
	"github.com/patrickprogramme/lyricsync/internal/updater"
	"github.com/patrickprogramme/lyricsync/pkg/model"
)

// FfmpegBuildCheck signale la dernière build ffmpeg publiée. Si aucun
// binaire local n'a été trouvé, le lien de téléchargement adapté à l'OS
// courant est affiché.
func (a *App) FfmpegBuildCheck(ctx context.Context, timeout time.Duration, version string) error {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check, err := updater.CheckFfmpegBuild(uc, version)
	if err != nil {
		return fmt.Errorf("vérification des builds ffmpeg a échoué : %v", err)
	}

	if check.Installed {
		a.ui.PrintInfo(ctx, fmt.Sprintf("✅ ffmpeg présent (%s)", check.LocalVersion))
		a.ui.PrintInfo(ctx, fmt.Sprintf("Dernière build publiée : %s (%s)",
			check.LatestBuild.TagName, check.LatestBuild.PublishedAt.Format("2006-01-02")))
		return nil
	}

	a.ui.PrintInfo(ctx, "⚠️ ffmpeg introuvable, une build statique est disponible :")
	a.ui.PrintInfo(ctx, fmt.Sprintf("  %s", check.LatestBuild.Name))
	a.ui.PrintInfo(ctx, "Téléchargez-la ici:")
	a.ui.PrintInfo(ctx, check.GetDownloadLink(runtime.GOOS))

	return nil
}

// LoadTranscript récupère le texte des paroles.
// Priorité : flag -text > fichier -transcript > clipboard/prompt (UI).
// En mode auto, les sources interactives sont exclues.
func (a *App) LoadTranscript(ctx context.Context) (string, error) {
	if a.flags.Text != "" {
		return a.flags.Text, nil
	}

	if a.flags.TranscriptPath != "" {
		data, err := os.ReadFile(a.flags.TranscriptPath)
		if err != nil {
			return "", fmt.Errorf("lecture transcript %s: %w", a.flags.TranscriptPath, err)
		}
		text := strings.TrimPrefix(string(data), "\ufeff")
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("transcript vide: %s", a.flags.TranscriptPath)
		}
		return text, nil
	}

	if a.cfg.AutoMode {
		return "", fmt.Errorf("mode auto: -text ou -transcript est obligatoire")
	}

	text, err := a.ui.GetTranscript(ctx)
	if err != nil {
		return "", fmt.Errorf("get transcript: %w", err)
	}
	return text, nil
}

// PrepareAudio amène le fichier source dans un état exploitable pour
// l'allocation : un chemin de MP3 sondable et une durée en secondes.
//   - si -duration est fourni, il prime sur tout sondage
//   - un MP3 source est sondé tel quel
//   - un non-MP3 est converti dans TempDir puis sondé ; le MP3 temporaire
//     devient la source de l'embarquement (on ne convertit pas deux fois)
//
// Une durée introuvable n'est PAS fatale : le retour est alors 0 et le
// pipeline dégrade en embarquement USLT seul. Seule la création du
// répertoire temporaire peut échouer.
// cleanup libère le répertoire temporaire éventuel ; toujours l'appeler.
func (a *App) PrepareAudio(ctx context.Context, audioPath string) (string, float64, func(), error) {
	noop := func() {}

	if a.flags.Duration > 0 {
		return audioPath, a.flags.Duration, noop, nil
	}

	if ffmpeg.IsMP3(audioPath) {
		d, err := probe.Duration(audioPath)
		if err != nil {
			a.ui.PrintError(ctx, fmt.Sprintf("warning: sondage de la durée de %s: %v", audioPath, err))
			return audioPath, 0, noop, nil
		}
		return audioPath, d, noop, nil
	}

	if a.conv == nil || !a.conv.Available() {
		a.ui.PrintError(ctx, fmt.Sprintf(
			"warning: %s n'est pas un MP3 et ffmpeg est indisponible, durée inconnue", audioPath))
		return audioPath, 0, noop, nil
	}

	tmpDir, cleanup, err := fsutil.ScopedTempDir(a.cfg.TempDir, "lyricsync-*")
	if err != nil {
		return "", 0, noop, fmt.Errorf("création du répertoire temporaire: %w", err)
	}

	tmpMP3 := filepath.Join(tmpDir, "converted.mp3")
	if err := a.conv.ConvertToMP3(ctx, audioPath, tmpMP3); err != nil {
		cleanup()
		a.ui.PrintError(ctx, fmt.Sprintf("warning: conversion de %s: %v", audioPath, err))
		return audioPath, 0, noop, nil
	}

	d, err := probe.Duration(tmpMP3)
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("warning: sondage du MP3 converti: %v", err))
		return tmpMP3, 0, cleanup, nil
	}
	return tmpMP3, d, cleanup, nil
}

// PreviewLines affiche les premières lignes synchronisées pour contrôle
// visuel avant l'embarquement. Silencieux en mode auto.
// La fusion des quasi-collisions s'applique ICI et seulement ici : c'est
// une transformation d'affichage, les unités reçues ne sont pas modifiées.
func (a *App) PreviewLines(ctx context.Context, units []model.TimedWord) {
	if a.cfg.AutoMode {
		return
	}
	maxWords := a.cfg.MaxWordsPerLine
	if maxWords <= 0 {
		maxWords = timing.DefaultMaxWordsPerLine
	}
	display := timing.Merge(units, timing.DefaultMergeThreshold)
	lines := timing.GroupLines(display, maxWords)

	const previewCount = 5
	a.ui.PrintInfo(ctx, "Aperçu des lignes synchronisées :")
	for i, l := range lines {
		if i >= previewCount {
			a.ui.PrintInfo(ctx, fmt.Sprintf("  ... (%d lignes au total)", len(lines)))
			break
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("  [%6.2fs] %s", l.Start, l.Text))
	}
}

// ExportLRC écrit le fichier LRC et/ou copie son contenu dans le
// presse-papier selon la config. L'échec de la copie n'est pas fatal.
func (a *App) ExportLRC(ctx context.Context, units []model.TimedWord, outPath string) error {
	wantFile := a.flags.LrcPath != "" || a.cfg.SaveLRC
	wantClip := a.cfg.CopyLRCToClipboard
	if !wantFile && !wantClip {
		return nil
	}
	if len(units) == 0 {
		a.ui.PrintError(ctx, "warning: pas de timestamps, export LRC sauté")
		return nil
	}

	maxWords := a.cfg.MaxWordsPerLine
	if maxWords <= 0 {
		maxWords = lrc.DefaultMaxWordsPerLine
	}

	if wantFile {
		lrcPath := a.flags.LrcPath
		if lrcPath == "" {
			lrcPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".lrc"
		}
		if err := lrc.ExportToFile(units, maxWords, lrcPath); err != nil {
			return fmt.Errorf("export LRC: %w", err)
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("LRC écrit dans: %s", lrcPath))
	}

	if wantClip {
		content := lrc.Export(units, maxWords)
		if err := clipboard.WriteAll(content); err != nil {
			a.ui.PrintError(ctx, fmt.Sprintf("warning: copie LRC dans le presse-papier: %v", err))
		} else {
			a.ui.PrintInfo(ctx, "LRC copié dans le presse-papier.")
		}
	}
	return nil
}
