// Package timing contient les algorithmes de manipulation des timestamps
// mot-à-mot : allocation, validation, fusion et regroupement en lignes.
// Toutes les passes sont O(n), déterministes, sans état partagé.
package timing

import (
	"math"
	"strings"

	"github.com/patrickprogramme/lyricsync/pkg/model"
)

const (
	// silence réservé en début et fin d'audio (secondes)
	leadIn  = 0.5
	leadOut = 0.5

	// petit écart respiratoire inséré avant chaque mot sauf le premier
	interWordGap = 0.05

	// durée minimale audible imposée par la validation
	minWordDuration = 0.1
)

// Allocate distribue les mots uniformément sur la durée de l'audio et
// retourne un TimedWord par mot non vide.
//
// C'est une heuristique de remplacement, PAS un alignement acoustique :
// la distribution est uniforme sur usable = duration - leadIn - leadOut,
// avec un gap de 0.05s devant chaque mot sauf le premier. La signature
// (mots + durée -> séquence) est le point d'insertion prévu pour un vrai
// algorithme d'alignement futur.
//
// Retourne nil (pas une erreur) si duration <= 0 ou si aucun mot ne reste
// après nettoyage : c'est à l'appelant de décider s'il continue sans
// synchronisation.
func Allocate(words []string, duration float64) []model.TimedWord {
	if duration <= 0 {
		return nil
	}

	// retirer les mots vides ou composés uniquement d'espaces
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if s := strings.TrimSpace(w); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	n := len(kept)
	usable := duration - leadIn - leadOut

	out := make([]model.TimedWord, 0, n)
	if n == 1 {
		// cas particulier : le mot unique couvre toute la zone utile
		out = append(out, model.TimedWord{
			Word:  kept[0],
			Start: round3(leadIn),
			End:   round3(duration - leadOut),
		})
		return out
	}

	per := usable / float64(n)
	for i, w := range kept {
		start := leadIn + float64(i)*per
		end := leadIn + float64(i+1)*per
		if i > 0 {
			start += interWordGap
		}
		out = append(out, model.TimedWord{
			Word:  w,
			Start: round3(start),
			End:   round3(end),
		})
	}
	return out
}

// round3 arrondit à la milliseconde (3 décimales).
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
