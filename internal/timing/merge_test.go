package timing

import (
	"strings"
	"testing"

	"github.com/patrickprogramme/lyricsync/pkg/model"
)

func TestMergeCloseWords(t *testing.T) {
	in := []model.TimedWord{
		{Word: "bonjour", Start: 0.5, End: 1.0},
		{Word: "le", Start: 1.02, End: 1.3},     // écart 0.02 <= seuil -> fusion
		{Word: "monde", Start: 1.31, End: 1.8},  // écart 0.01 -> fusion aussi
		{Word: "ensuite", Start: 3.0, End: 3.5}, // écart 1.2 -> nouveau groupe
	}

	got := Merge(in, DefaultMergeThreshold)
	if len(got) != 2 {
		t.Fatalf("expected 2 merged units, got %d: %v", len(got), got)
	}
	if got[0].Word != "bonjour le monde" {
		t.Fatalf("expected space-joined group, got %q", got[0].Word)
	}
	if !approx(got[0].Start, 0.5) || !approx(got[0].End, 1.8) {
		t.Fatalf("merged bounds wrong: [%.3f, %.3f]", got[0].Start, got[0].End)
	}
	if got[1].Word != "ensuite" {
		t.Fatalf("expected lone unit unchanged, got %q", got[1].Word)
	}
}

func TestMergePreservesWordMultiset(t *testing.T) {
	in := []model.TimedWord{
		{Word: "a", Start: 0.0, End: 0.2},
		{Word: "b", Start: 0.21, End: 0.4},
		{Word: "c", Start: 1.0, End: 1.2},
		{Word: "d", Start: 1.22, End: 1.4},
		{Word: "e", Start: 5.0, End: 5.2},
	}

	got := Merge(in, DefaultMergeThreshold)

	// la concaténation des champs Word resplittée par espaces doit
	// reproduire exactement la séquence d'origine
	var rebuilt []string
	for _, u := range got {
		rebuilt = append(rebuilt, strings.Fields(u.Word)...)
	}
	if len(rebuilt) != len(in) {
		t.Fatalf("word count changed: %d vs %d", len(rebuilt), len(in))
	}
	for i, w := range rebuilt {
		if w != in[i].Word {
			t.Fatalf("word %d changed: %q vs %q", i, w, in[i].Word)
		}
	}
}

func TestMergeNoAdjacentCloseEntries(t *testing.T) {
	in := []model.TimedWord{
		{Word: "w1", Start: 0.0, End: 0.5},
		{Word: "w2", Start: 0.52, End: 1.0},
		{Word: "w3", Start: 1.2, End: 1.6},
		{Word: "w4", Start: 1.62, End: 2.0},
	}
	const threshold = 0.05

	got := Merge(in, threshold)
	for i := 1; i < len(got); i++ {
		gap := got[i].Start - got[i-1].End
		if gap <= threshold {
			t.Fatalf("adjacent entries %d/%d still within threshold: gap %.3f", i-1, i, gap)
		}
	}
}

func TestMergeSingleAndEmpty(t *testing.T) {
	if got := Merge(nil, DefaultMergeThreshold); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}

	in := []model.TimedWord{{Word: "seul", Start: 1.0, End: 2.0}}
	got := Merge(in, DefaultMergeThreshold)
	if len(got) != 1 || got[0] != in[0] {
		t.Fatalf("expected size-1 group flushed unchanged, got %v", got)
	}
}
