package ffmpeg

import (
	"context"
	"fmt"
)

// Interface expose les opérations du convertisseur utilisées par le
// pipeline. Pour les tests, on injecte une implémentation mock.
type Interface interface {
	Available() bool
	ConvertToMP3(ctx context.Context, inPath, outPath string) error
	GetVersion(ctx context.Context) (string, error)
}

// Ffmpeg représente la commande ffmpeg à exécuter (nom de binaire ou chemin) + config.
type Ffmpeg struct {
	Name   string
	Path   string // chemin vers l'exe
	Config Config
}

func (f Ffmpeg) String() string {
	return fmt.Sprintf("Ffmpeg(name=%s, path=%s)", f.Name, f.Path)
}
