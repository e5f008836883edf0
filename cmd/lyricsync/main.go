package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/patrickprogramme/lyricsync/internal/app"
	"github.com/patrickprogramme/lyricsync/internal/assets"
	"github.com/patrickprogramme/lyricsync/internal/bootstrap"
	"github.com/patrickprogramme/lyricsync/internal/config"
	"github.com/patrickprogramme/lyricsync/internal/ui"
)

func main() {
	flags := parseFlags()

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
		fmt.Printf("Lancement depuis: %s\n", exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == "lyricsync.yaml" || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, "lyricsync.yaml")
	}

	// s'assurer que le fichier config existe, si non on le crée
	if err := bootstrap.EnsureConfigPresent(
		flags.ConfigPath,
		assets.Embedded,
		assets.DefaultConfigAsset,
	); err != nil {
		log.Printf("erreur: EnsureConfigPresent: %v", err)
	}

	// charger la config depuis flags.ConfigPath (qui pointe vers binDir/lyricsync.yaml si par défaut)
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// appliquer le flag -auto par-dessus la config
	if flags.Auto {
		cfg.AutoMode = true
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, flags)
	if err := a.Run(ctx); err != nil {
		log.Fatalf("app run: %v", err)
	}
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "lyricsync.yaml", "path to config file")
	flag.StringVar(&f.In, "in", "", "fichier audio source (optionnel, sinon clipboard/prompt)")
	flag.StringVar(&f.Text, "text", "", "paroles passées directement en argument")
	flag.StringVar(&f.TranscriptPath, "transcript", "", "chemin d'un fichier texte contenant les paroles")
	flag.StringVar(&f.Out, "out", "", "chemin du MP3 de sortie (sinon output_dir de la config)")
	flag.Float64Var(&f.Duration, "duration", 0, "durée forcée en secondes (0 = sonder le fichier)")
	flag.StringVar(&f.LrcPath, "lrc", "", "chemin d'export du fichier LRC")
	flag.StringVar(&f.FfmpegPath, "ffmpeg-path", "", "chemin absolu vers l'exécutable ffmpeg")
	flag.BoolVar(&f.Auto, "auto", false, "exécution automatique sans interaction")
	flag.Parse()
	return f
}
