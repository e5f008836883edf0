package id3

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/patrickprogramme/lyricsync/pkg/model"
)

// identifiants de trames utilisés par le pipeline
const (
	FrameSYLT = "SYLT"
	FrameUSLT = "USLT"
)

// encodages de texte ID3v2
const (
	encLatin1  = 0
	encUTF16   = 1 // avec BOM
	encUTF16BE = 2
	encUTF8    = 3
)

// valeurs SYLT imposées par le pipeline : timestamps absolus en
// millisecondes, contenu de type "lyrics"
const (
	timestampAbsoluteMs = 2
	contentTypeLyrics   = 1
)

// DefaultLanguage est le code langue ISO-639-2 par défaut des trames.
const DefaultLanguage = "eng"

// EncodeSYLTEntries transforme une séquence de TimedWord en entrées SYLT.
// Les mots vides après trim sont ignorés. L'offset est la TRONCATURE de
// start*1000 (voir model.TimedWord.StartMs) — surtout ne pas arrondir, la
// reproductibilité bit-à-bit des tests en dépend.
// Séquence vide en entrée -> séquence vide en sortie (pas une erreur) :
// l'appelant saute alors l'embarquement SYLT et garde le fallback USLT.
func EncodeSYLTEntries(units []model.TimedWord) []model.SyltEntry {
	out := make([]model.SyltEntry, 0, len(units))
	for _, u := range units {
		word := strings.TrimSpace(u.Word)
		if word == "" {
			continue
		}
		out = append(out, model.SyltEntry{Text: word, OffsetMs: u.StartMs()})
	}
	return out
}

// EncodeSYLT construit le corps binaire d'une trame SYLT (UTF-8, timestamps
// absolus en ms, content type lyrics, descripteur vide) :
//
//	encodage(1) | langue(3) | format ts(1) | content type(1) |
//	descripteur terminé | { texte terminé | offset uint32 BE }*
func EncodeSYLT(entries []model.SyltEntry, lang string) []byte {
	body := make([]byte, 0, 16+len(entries)*12)
	body = append(body, encUTF8)
	body = append(body, normalizeLang(lang)...)
	body = append(body, timestampAbsoluteMs, contentTypeLyrics)
	body = append(body, 0x00) // descripteur vide, terminé

	for _, e := range entries {
		body = append(body, e.Text...)
		body = append(body, 0x00)
		var ts [4]byte
		be.PutUint32(ts[:], e.OffsetMs)
		body = append(body, ts[:]...)
	}
	return body
}

// DecodeSYLT décode le corps d'une trame SYLT et retourne ses entrées
// dans l'ordre du flux. Supporte les quatre encodages de texte ID3v2.
func DecodeSYLT(body []byte) ([]model.SyltEntry, error) {
	if len(body) < 7 {
		return nil, fmt.Errorf("corps SYLT trop court (%d octets)", len(body))
	}
	enc := body[0]
	// langue (3 octets) + format + content type ignorés à la relecture
	rest := body[6:]

	// descripteur de contenu terminé
	_, rest, err := readTerminated(enc, rest)
	if err != nil {
		return nil, fmt.Errorf("descripteur SYLT: %w", err)
	}

	var entries []model.SyltEntry
	for len(rest) > 0 {
		text, after, err := readTerminated(enc, rest)
		if err != nil {
			return entries, fmt.Errorf("entrée SYLT %d: %w", len(entries), err)
		}
		if len(after) < 4 {
			return entries, fmt.Errorf("entrée SYLT %d: timestamp tronqué", len(entries))
		}
		entries = append(entries, model.SyltEntry{
			Text:     text,
			OffsetMs: be.Uint32(after[:4]),
		})
		rest = after[4:]
	}
	return entries, nil
}

// EncodeUSLT construit le corps d'une trame USLT (UTF-8) :
//
//	encodage(1) | langue(3) | descripteur terminé | texte (non terminé)
func EncodeUSLT(text, lang, desc string) []byte {
	body := make([]byte, 0, 5+len(desc)+len(text))
	body = append(body, encUTF8)
	body = append(body, normalizeLang(lang)...)
	body = append(body, desc...)
	body = append(body, 0x00)
	body = append(body, text...)
	return body
}

// DecodeUSLT décode le corps d'une trame USLT et retourne le texte des paroles.
func DecodeUSLT(body []byte) (string, error) {
	if len(body) < 5 {
		return "", fmt.Errorf("corps USLT trop court (%d octets)", len(body))
	}
	enc := body[0]
	rest := body[4:]

	_, rest, err := readTerminated(enc, rest)
	if err != nil {
		return "", fmt.Errorf("descripteur USLT: %w", err)
	}
	return decodeText(enc, rest)
}

// normalizeLang force un code langue de 3 octets exactement.
func normalizeLang(lang string) []byte {
	if len(lang) != 3 {
		lang = DefaultLanguage
	}
	return []byte(lang)
}

// readTerminated lit une chaîne terminée selon l'encodage (zéro simple en
// latin1/UTF-8, double zéro aligné en UTF-16) et retourne le texte décodé
// plus le reste du buffer.
func readTerminated(enc byte, b []byte) (string, []byte, error) {
	switch enc {
	case encLatin1, encUTF8:
		for i := 0; i < len(b); i++ {
			if b[i] == 0 {
				s, err := decodeText(enc, b[:i])
				return s, b[i+1:], err
			}
		}
		return "", nil, fmt.Errorf("terminateur manquant")
	case encUTF16, encUTF16BE:
		for i := 0; i+1 < len(b); i += 2 {
			if b[i] == 0 && b[i+1] == 0 {
				s, err := decodeText(enc, b[:i])
				return s, b[i+2:], err
			}
		}
		return "", nil, fmt.Errorf("terminateur UTF-16 manquant")
	default:
		return "", nil, fmt.Errorf("encodage %d inconnu", enc)
	}
}

// decodeText décode des octets selon l'encodage ID3v2 donné.
func decodeText(enc byte, b []byte) (string, error) {
	switch enc {
	case encUTF8:
		return string(b), nil
	case encLatin1:
		runes := make([]rune, len(b))
		for i, c := range b {
			runes[i] = rune(c)
		}
		return string(runes), nil
	case encUTF16, encUTF16BE:
		bigEndian := enc == encUTF16BE
		// BOM éventuel en tête
		if len(b) >= 2 {
			if b[0] == 0xFE && b[1] == 0xFF {
				bigEndian = true
				b = b[2:]
			} else if b[0] == 0xFF && b[1] == 0xFE {
				bigEndian = false
				b = b[2:]
			}
		}
		if len(b)%2 != 0 {
			return "", fmt.Errorf("UTF-16 de longueur impaire")
		}
		u16 := make([]uint16, len(b)/2)
		for i := range u16 {
			if bigEndian {
				u16[i] = be.Uint16(b[i*2:])
			} else {
				u16[i] = uint16(b[i*2]) | uint16(b[i*2+1])<<8
			}
		}
		return string(utf16.Decode(u16)), nil
	default:
		return "", fmt.Errorf("encodage %d inconnu", enc)
	}
}
