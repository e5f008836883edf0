package model

import (
	"fmt"
	"math"
	"strings"
)

// TimedWord représente un mot du transcript avec ses bornes temporelles
// en secondes depuis le début de l'audio. Après validation, la séquence
// est croissante en Start et chaque End > Start.
type TimedWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// StartMs retourne l'offset de début en millisecondes ENTIÈRES, par
// TRONCATURE (pas d'arrondi). C'est la convention SYLT : floor(start*1000),
// à conserver telle quelle pour la reproductibilité bit-à-bit.
func (w TimedWord) StartMs() uint32 {
	if w.Start <= 0 {
		return 0
	}
	return uint32(math.Floor(w.Start * 1000))
}

// Duration retourne la durée du mot en secondes.
func (w TimedWord) Duration() float64 {
	return w.End - w.Start
}

func (w TimedWord) String() string {
	return fmt.Sprintf("TimedWord(%q, %.3f-%.3f)", w.Word, w.Start, w.End)
}

// TimedLine regroupe plusieurs TimedWord pour l'affichage (une ligne/phrase).
// Start = début du premier mot, End = fin du dernier. Uniquement destiné à
// l'affichage et à l'export texte, jamais ré-embarqué au niveau mot.
type TimedLine struct {
	Text  string      `json:"text"`
	Start float64     `json:"start"`
	End   float64     `json:"end"`
	Words []TimedWord `json:"words"`
}

func (l TimedLine) String() string {
	return fmt.Sprintf("TimedLine(%q, %.3f-%.3f, %d mots)", l.Text, l.Start, l.End, len(l.Words))
}

// SyltEntry est une entrée de la trame SYLT : un texte et son offset absolu
// en millisecondes depuis le début de la lecture (format 2 du standard ID3v2).
type SyltEntry struct {
	Text     string
	OffsetMs uint32
}

func (e SyltEntry) String() string {
	return fmt.Sprintf("(%q, %dms)", e.Text, e.OffsetMs)
}

// JoinWords reconstitue le texte complet d'une séquence de TimedWord
// (mots joints par un espace). Pratique pour le fallback USLT.
func JoinWords(words []TimedWord) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if s := strings.TrimSpace(w.Word); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
