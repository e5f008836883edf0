package timing

import (
	"strings"

	"github.com/patrickprogramme/lyricsync/pkg/model"
)

// DefaultMaxWordsPerLine est le nombre maximum de mots par ligne d'affichage.
const DefaultMaxWordsPerLine = 8

// GroupLines partitionne la séquence en lignes d'affichage. Une ligne se
// ferme quand elle atteint maxWords OU quand le mot courant se termine par
// un terminateur de phrase (. ! ?). La ligne partielle restante est émise
// en fin de parcours quelle que soit sa taille.
//
// Passe unique, déterministe, sans backtracking. Le résultat ne sert qu'à
// l'affichage : le flux SYLT reste au niveau mot.
func GroupLines(units []model.TimedWord, maxWords int) []model.TimedLine {
	if len(units) == 0 {
		return nil
	}
	if maxWords <= 0 {
		maxWords = DefaultMaxWordsPerLine
	}

	var out []model.TimedLine
	var line []model.TimedWord

	flush := func() {
		if len(line) == 0 {
			return
		}
		words := make([]string, 0, len(line))
		for _, w := range line {
			words = append(words, w.Word)
		}
		out = append(out, model.TimedLine{
			Text:  strings.TrimSpace(strings.Join(words, " ")),
			Start: line[0].Start,
			End:   line[len(line)-1].End,
			Words: line,
		})
		line = nil
	}

	for _, u := range units {
		line = append(line, u)
		if len(line) >= maxWords || endsSentence(u.Word) {
			flush()
		}
	}
	flush()

	return out
}

// endsSentence indique si le mot se termine par un terminateur de phrase.
func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") ||
		strings.HasSuffix(word, "!") ||
		strings.HasSuffix(word, "?")
}
