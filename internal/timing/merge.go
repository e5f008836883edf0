package timing

import (
	"strings"

	"github.com/patrickprogramme/lyricsync/pkg/model"
)

// DefaultMergeThreshold est l'écart (secondes) en dessous duquel deux mots
// consécutifs sont considérés comme chevauchants et fusionnés.
const DefaultMergeThreshold = 0.05

// Merge fusionne les mots consécutifs dont l'écart est inférieur ou égal au
// seuil en une seule unité (texte joint par des espaces, Start du premier
// membre, End du dernier).
//
// Balayage unique de gauche à droite : une unité rejoint le groupe courant
// ssi unit.Start - dernierMembre.End <= threshold ; sinon le groupe accumulé
// est émis et un nouveau groupe démarre. Un groupe de taille 1 est émis tel
// quel. Fusion irréversible, réservée à l'affichage — jamais appliquée au
// flux SYLT au niveau mot.
func Merge(units []model.TimedWord, threshold float64) []model.TimedWord {
	if len(units) == 0 {
		return nil
	}

	out := make([]model.TimedWord, 0, len(units))
	group := []model.TimedWord{units[0]}

	flush := func() {
		if len(group) == 1 {
			out = append(out, group[0])
			return
		}
		words := make([]string, 0, len(group))
		for _, g := range group {
			words = append(words, g.Word)
		}
		out = append(out, model.TimedWord{
			Word:  strings.Join(words, " "),
			Start: group[0].Start,
			End:   group[len(group)-1].End,
		})
	}

	for _, u := range units[1:] {
		lastEnd := group[len(group)-1].End
		if u.Start-lastEnd <= threshold {
			group = append(group, u)
			continue
		}
		flush()
		group = []model.TimedWord{u}
	}
	flush()

	return out
}
