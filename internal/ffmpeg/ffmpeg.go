// Package ffmpeg encapsule l'invocation du binaire ffmpeg externe pour la
// conversion vers MP3. Le pipeline n'effectue JAMAIS de conversion de codec
// en interne : si ffmpeg est absent ou échoue, l'appelant retombe sur une
// copie verbatim des octets d'origine (mode dégradé).
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// NewFfmpeg construit une instance. resolvedPath doit être le chemin résolu
// vers l'exe ; vide => recherche dans le PATH via le nom.
func NewFfmpeg(name string, resolvedPath string, cfg Config) *Ffmpeg {
	return &Ffmpeg{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
	}
}

// Available indique si le binaire est invocable : chemin résolu existant,
// ou nom trouvable dans le PATH (équivalent de `which ffmpeg`).
func (f *Ffmpeg) Available() bool {
	if f == nil {
		return false
	}
	if f.Path != "" {
		if info, err := os.Stat(f.Path); err == nil && !info.IsDir() {
			return true
		}
	}
	_, err := exec.LookPath(f.Name)
	return err == nil
}

// CheckBinary vérifie que le binaire existe et est exécutable.
func (f *Ffmpeg) CheckBinary() error {
	if f == nil {
		return fmt.Errorf("ffmpeg non initialisé")
	}

	exe := f.Path
	if exe == "" {
		// fallback : chercher le nom dans le PATH
		if _, err := exec.LookPath(f.Name); err != nil {
			return fmt.Errorf("ffmpeg introuvable dans le PATH (%s) : %w", f.Name, err)
		}
		return nil
	}

	info, err := os.Stat(exe)
	if err != nil {
		return fmt.Errorf("ffmpeg introuvable (%s) à l'emplacement spécifié : %v", exe, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour ffmpeg est un répertoire, pas un fichier exécutable")
	}
	return nil
}

// ConvertToMP3 exécute la conversion vers MP3. La sortie de ffmpeg est
// capturée (stdout+stderr) et jointe à l'erreur en cas d'échec pour le
// diagnostic.
func (f *Ffmpeg) ConvertToMP3(ctx context.Context, inPath, outPath string) error {
	args := f.Config.BuildArgs(inPath, outPath)

	exe := f.Path
	if exe == "" {
		exe = f.Name
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("conversion ffmpeg échouée: %w, output: %s", err, string(out))
	}
	return nil
}

// GetVersion exécute ffmpeg -version et retourne la première ligne de sortie.
// Utilise CombinedOutput pour capturer à la fois stdout et stderr,
// ce qui facilite le diagnostic en cas d'échec.
func (f *Ffmpeg) GetVersion(ctx context.Context) (string, error) {
	exe := f.Path
	if exe == "" {
		exe = f.Name
	}
	out, err := exec.CommandContext(ctx, exe, "-version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("échec exécution ffmpeg -version : %w, output: %s", err, string(out))
	}
	lines := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)
	return strings.TrimSpace(lines[0]), nil
}

// IsMP3 indique si le chemin porte l'extension .mp3 (insensible à la casse).
// Le contenu n'est pas inspecté : la détection par extension suffit pour
// décider de convertir ou non.
func IsMP3(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}
