package id3

import (
	"testing"

	"github.com/patrickprogramme/lyricsync/pkg/model"
)

func TestEncodeSYLTEntriesTruncatesOffsets(t *testing.T) {
	// 5 mots sur [0.5,1.0), [1.0,1.5), ... : offset = floor(start*1000)
	var units []model.TimedWord
	for i := 0; i < 5; i++ {
		start := 0.5 + float64(i)*0.5
		units = append(units, model.TimedWord{Word: "mot", Start: start, End: start + 0.5})
	}

	entries := EncodeSYLTEntries(units)
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	want := []uint32{500, 1000, 1500, 2000, 2500}
	for i, e := range entries {
		if e.OffsetMs != want[i] {
			t.Fatalf("entry %d: expected offset %d, got %d", i, want[i], e.OffsetMs)
		}
	}

	// cas de troncature pure : 1.9999 -> 1999, pas 2000
	tr := EncodeSYLTEntries([]model.TimedWord{{Word: "x", Start: 1.9999, End: 2.5}})
	if tr[0].OffsetMs != 1999 {
		t.Fatalf("expected truncation to 1999, got %d", tr[0].OffsetMs)
	}
}

func TestEncodeSYLTEntriesDropsBlanks(t *testing.T) {
	units := []model.TimedWord{
		{Word: "ok", Start: 1.0, End: 1.5},
		{Word: "   ", Start: 2.0, End: 2.5},
		{Word: "", Start: 3.0, End: 3.5},
	}
	entries := EncodeSYLTEntries(units)
	if len(entries) != 1 || entries[0].Text != "ok" {
		t.Fatalf("expected single entry 'ok', got %v", entries)
	}

	// séquence vide -> séquence vide, pas d'erreur
	if got := EncodeSYLTEntries(nil); len(got) != 0 {
		t.Fatalf("expected empty entries, got %v", got)
	}
}

func TestSYLTRoundTrip(t *testing.T) {
	in := []model.SyltEntry{
		{Text: "Hello", OffsetMs: 500},
		{Text: "wörld", OffsetMs: 1550}, // UTF-8 multi-octets
		{Text: "encore", OffsetMs: 120000},
	}

	body := EncodeSYLT(in, "eng")
	out, err := DecodeSYLT(body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d entries, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("entry %d mismatch: %v vs %v", i, out[i], in[i])
		}
	}
}

func TestSYLTHeaderFields(t *testing.T) {
	body := EncodeSYLT([]model.SyltEntry{{Text: "a", OffsetMs: 1}}, "fra")

	if body[0] != encUTF8 {
		t.Fatalf("expected UTF-8 encoding byte, got %d", body[0])
	}
	if string(body[1:4]) != "fra" {
		t.Fatalf("expected language 'fra', got %q", body[1:4])
	}
	if body[4] != timestampAbsoluteMs {
		t.Fatalf("expected timestamp format 2 (absolute ms), got %d", body[4])
	}
	if body[5] != contentTypeLyrics {
		t.Fatalf("expected content type 1 (lyrics), got %d", body[5])
	}
	// langue invalide -> fallback "eng"
	body = EncodeSYLT(nil, "zz")
	if string(body[1:4]) != DefaultLanguage {
		t.Fatalf("expected fallback language, got %q", body[1:4])
	}
}

func TestUSLTRoundTrip(t *testing.T) {
	const lyrics = "Bonjour le monde.\nDeuxième ligne."

	body := EncodeUSLT(lyrics, "eng", "")
	got, err := DecodeUSLT(body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != lyrics {
		t.Fatalf("expected %q, got %q", lyrics, got)
	}
}

func TestDecodeSYLTUTF16(t *testing.T) {
	// trame SYLT UTF-16 little-endian avec BOM, écrite par un autre tagger
	body := []byte{encUTF16, 'e', 'n', 'g', timestampAbsoluteMs, contentTypeLyrics}
	// descripteur vide : BOM + double zéro
	body = append(body, 0xFF, 0xFE, 0x00, 0x00)
	// "Hi" + terminateur + offset 750
	body = append(body, 0xFF, 0xFE, 'H', 0x00, 'i', 0x00, 0x00, 0x00)
	body = append(body, 0x00, 0x00, 0x02, 0xEE)

	entries, err := DecodeSYLT(body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "Hi" || entries[0].OffsetMs != 750 {
		t.Fatalf("unexpected entries: %v", entries)
	}
}

func TestDecodeSYLTTruncated(t *testing.T) {
	if _, err := DecodeSYLT([]byte{encUTF8, 'e', 'n'}); err == nil {
		t.Fatal("expected error for truncated body")
	}
	// entrée sans timestamp complet
	body := EncodeSYLT([]model.SyltEntry{{Text: "a", OffsetMs: 1}}, "eng")
	if _, err := DecodeSYLT(body[:len(body)-2]); err == nil {
		t.Fatal("expected error for truncated timestamp")
	}
}
