// Package lrc sérialise des mots horodatés vers le format LRC : un fichier
// texte de paroles où chaque ligne est préfixée de [mm:ss.cc].
package lrc

import (
	"fmt"
	"strings"

	"github.com/patrickprogramme/lyricsync/internal/fsutil"
	"github.com/patrickprogramme/lyricsync/pkg/model"
)

// DefaultMaxWordsPerLine est le nombre de mots par ligne LRC.
const DefaultMaxWordsPerLine = 8

// Export rend la séquence en texte LRC. Le regroupement se fait uniquement
// au compte de mots (PAS de règle de ponctuation, contrairement aux lignes
// d'affichage) et chaque ligne prend le timestamp du premier mot du groupe.
func Export(units []model.TimedWord, maxWords int) string {
	if len(units) == 0 {
		return ""
	}
	if maxWords <= 0 {
		maxWords = DefaultMaxWordsPerLine
	}

	var b strings.Builder
	var line []model.TimedWord

	flush := func() {
		if len(line) == 0 {
			return
		}
		words := make([]string, 0, len(line))
		for _, w := range line {
			words = append(words, w.Word)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatTimestamp(line[0].Start))
		b.WriteString(strings.Join(words, " "))
		line = nil
	}

	for _, u := range units {
		line = append(line, u)
		if len(line) >= maxWords {
			flush()
		}
	}
	flush()

	return b.String()
}

// ExportToFile écrit le rendu LRC dans path (écriture atomique).
func ExportToFile(units []model.TimedWord, maxWords int, path string) error {
	text := Export(units, maxWords)
	if text == "" {
		return fmt.Errorf("pas de mots horodatés à exporter vers %s", path)
	}
	if err := fsutil.WriteFileAtomic(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("écriture LRC: %w", err)
	}
	return nil
}

// formatTimestamp rend un préfixe [mm:ss.cc] : minutes sur deux chiffres,
// secondes avec centisecondes. L'arrondi se fait AVANT la découpe en
// minutes, sinon 59.995s donnerait [00:60.00] au lieu de [01:00.00].
func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	cs := int(seconds*100 + 0.5)
	m := cs / 6000
	cs %= 6000
	return fmt.Sprintf("[%02d:%02d.%02d]", m, cs/100, cs%100)
}
