package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ValidateFfmpegPresence vérifie de manière statique que si un ResolvedPath est défini,
// le fichier existe et que le répertoire parent est accessible.
// Retourne warnings (non-fataux) et une erreur si c'est critique — l'absence
// de ffmpeg n'est jamais fatale, le pipeline sait dégrader en copie simple.
func (c *Config) ValidateFfmpegPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	// assure que le resolved path est calculé
	c.ResolveFfmpegPath()

	p := strings.TrimSpace(c.Ffmpeg.ResolvedPath)
	if p == "" {
		// pas de chemin configuré : on vérifie la présence dans le PATH
		if _, lerr := exec.LookPath(c.Ffmpeg.Name); lerr != nil {
			warnings = append(warnings, fmt.Sprintf("ffmpeg (%s) introuvable dans le PATH", c.Ffmpeg.Name))
		}
		return warnings, nil
	}

	parent := filepath.Dir(p)
	if st, serr := os.Stat(parent); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("le dossier parent du chemin ffmpeg n'existe pas : %s", parent))
		} else {
			return warnings, fmt.Errorf("impossible d'accéder au dossier parent %s : %w", parent, serr)
		}
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("le parent du chemin ffmpeg n'est pas un répertoire : %s", parent)
	}

	// vérifier si le fichier existe (stat)
	if info, serr := os.Stat(p); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("ffmpeg introuvable à l'emplacement configuré : %s", p))
			return warnings, nil
		}
		return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", p, serr)
	} else if info.IsDir() {
		return warnings, fmt.Errorf("le chemin configuré pour ffmpeg est un répertoire : %s", p)
	}

	return warnings, nil
}
