package timing

import (
	"math"
	"testing"
)

// helper : comparaison float avec tolérance d'une demi-milliseconde
func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.0005
}

func TestAllocateTwoWords(t *testing.T) {
	got := Allocate([]string{"Hello", "world"}, 3.0)
	if len(got) != 2 {
		t.Fatalf("expected 2 units, got %d", len(got))
	}

	// usable = 3.0 - 0.5 - 0.5 = 2.0, soit 1.0s par mot
	if !approx(got[0].Start, 0.5) || !approx(got[0].End, 1.5) {
		t.Fatalf("word 1: expected [0.5, 1.5], got [%.3f, %.3f]", got[0].Start, got[0].End)
	}
	// le second mot démarre avec le gap inter-mots de 0.05s
	if !approx(got[1].Start, 1.55) || !approx(got[1].End, 2.5) {
		t.Fatalf("word 2: expected [1.55, 2.5], got [%.3f, %.3f]", got[1].Start, got[1].End)
	}
}

func TestAllocateSingleWordSpansUsableRange(t *testing.T) {
	got := Allocate([]string{"solo"}, 10.0)
	if len(got) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(got))
	}
	if !approx(got[0].Start, 0.5) || !approx(got[0].End, 9.5) {
		t.Fatalf("expected [0.5, 9.5], got [%.3f, %.3f]", got[0].Start, got[0].End)
	}
}

func TestAllocateDropsBlankWords(t *testing.T) {
	got := Allocate([]string{"a", "", "  ", "b"}, 5.0)
	if len(got) != 2 {
		t.Fatalf("expected 2 units after dropping blanks, got %d", len(got))
	}
	if got[0].Word != "a" || got[1].Word != "b" {
		t.Fatalf("expected words a,b got %q,%q", got[0].Word, got[1].Word)
	}
}

func TestAllocateEmptyInputs(t *testing.T) {
	if got := Allocate(nil, 10.0); got != nil {
		t.Fatalf("expected nil for empty word list, got %v", got)
	}
	if got := Allocate([]string{"x"}, 0); got != nil {
		t.Fatalf("expected nil for zero duration, got %v", got)
	}
	if got := Allocate([]string{"x"}, -3); got != nil {
		t.Fatalf("expected nil for negative duration, got %v", got)
	}
}

func TestAllocateMonotoneAndBounded(t *testing.T) {
	words := []string{"un", "deux", "trois", "quatre", "cinq", "six", "sept"}
	const duration = 42.5

	got := Allocate(words, duration)
	if len(got) != len(words) {
		t.Fatalf("expected %d units, got %d", len(words), len(got))
	}
	for i, u := range got {
		if u.End <= u.Start {
			t.Fatalf("unit %d: end %.3f <= start %.3f", i, u.End, u.Start)
		}
		if u.End > duration {
			t.Fatalf("unit %d: end %.3f > duration", i, u.End)
		}
		if i > 0 && u.Start < got[i-1].Start {
			t.Fatalf("unit %d: start %.3f < previous start %.3f", i, u.Start, got[i-1].Start)
		}
	}
}

func TestAllocateMillisecondPrecision(t *testing.T) {
	got := Allocate([]string{"a", "b", "c"}, 7.123456)
	for i, u := range got {
		if !approx(u.Start, round3(u.Start)) || u.Start != round3(u.Start) {
			t.Fatalf("unit %d: start %v not rounded to ms", i, u.Start)
		}
		if u.End != round3(u.End) {
			t.Fatalf("unit %d: end %v not rounded to ms", i, u.End)
		}
	}
}
