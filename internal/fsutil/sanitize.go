package fsutil

import (
	"regexp"
	"strings"
)

// limite de longueur de la chaine
const max = 200

// invalidFileRunes définit les caractères interdits dans les noms de fichiers
// \x00-\x1F sont les caractères de contrôle
var invalidFileRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// multiSep détecte les séquences d'espaces ou d'underscores à réduire.
var multiSep = regexp.MustCompile(`[_\s]+`)

// SanitizeFilename nettoie une chaîne de caractères pour en faire un nom de fichier valide.
// Étapes :
// - Remplace les caractères interdits par "_"
// - Réduit les espaces/underscores consécutifs à un seul "_"
// - Supprime les underscores et points en début/fin
// - Limite la longueur du nom
// - Fournit un nom par défaut si la chaîne est vide
func SanitizeFilename(name string) string {
	if strings.TrimSpace(name) == "" {
		return "output"
	}

	clean := invalidFileRunes.ReplaceAllString(name, "_")
	clean = multiSep.ReplaceAllString(clean, "_")
	clean = strings.Trim(clean, "_")
	clean = strings.TrimRight(clean, ".")

	if clean == "" {
		return "output"
	}
	if len(clean) > max {
		clean = clean[:max]
	}
	return clean
}
