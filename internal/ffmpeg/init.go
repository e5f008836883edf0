package ffmpeg

import (
	"context"
	"time"

	"github.com/patrickprogramme/lyricsync/internal/config"
)

const defaultVersionTimeout = 5 * time.Second

// InitFfmpeg initialise le client ffmpeg depuis la config et tente de
// récupérer la version. L'absence du binaire n'est PAS une erreur : le
// pipeline continue en mode dégradé (copie sans conversion) — la version
// revient alors vide.
func InitFfmpeg(ctx context.Context, cfg *config.Config) (Interface, string) {
	fcfg := NewConfig()
	conv := NewFfmpeg(cfg.Ffmpeg.Name, cfg.Ffmpeg.ResolvedPath, *fcfg)

	if !conv.Available() {
		return conv, ""
	}

	// récupérer la version (avec timeout) ; best-effort, pour les logs
	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := conv.GetVersion(vctx)
	if err != nil {
		return conv, ""
	}
	return conv, version
}
