package timing

import (
	"strings"

	"github.com/patrickprogramme/lyricsync/pkg/model"
)

// Validate nettoie une séquence de TimedWord contre la durée connue de
// l'audio. Ne retourne jamais d'erreur : les entrées malformées sont
// réparées ou supprimées, jamais propagées.
//
// Règles appliquées à chaque unité, dans l'ordre :
//  1. suppression si le mot est vide après trim
//  2. Start ramené à max(0, Start)
//  3. End ramené à min(duration, End)
//  4. si End <= Start, forcer End = Start + 0.1 (durée minimale audible)
//  5. arrondi des deux bornes à la milliseconde
//
// L'ordre d'entrée est préservé : l'allocateur garantit déjà des Start
// croissants, la validation ne re-trie pas. Validate est idempotente.
func Validate(units []model.TimedWord, duration float64) []model.TimedWord {
	out := make([]model.TimedWord, 0, len(units))
	for _, u := range units {
		word := strings.TrimSpace(u.Word)
		if word == "" {
			continue
		}

		start := u.Start
		if start < 0 {
			start = 0
		}
		end := u.End
		if end > duration {
			end = duration
		}
		if end <= start {
			end = start + minWordDuration
		}

		out = append(out, model.TimedWord{
			Word:  word,
			Start: round3(start),
			End:   round3(end),
		})
	}
	return out
}
