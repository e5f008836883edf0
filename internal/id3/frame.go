package id3

import (
	"fmt"
)

// flags de format v2.4 (second octet de flags d'une trame)
const (
	frameFlagUnsync = 0x02 // corps unsynchronisé
	frameFlagDLI    = 0x01 // data length indicator présent
)

// Frame est une trame ID3v2 décodée a minima : identifiant 4 caractères et
// corps brut (déjà dé-unsynchronisé). Les flags de format sont remis à zéro
// à la réécriture : on ne produit jamais de trames compressées, chiffrées
// ni unsynchronisées.
type Frame struct {
	ID   string
	Body []byte
}

func (f Frame) String() string {
	return fmt.Sprintf("Frame(%s, %d octets)", f.ID, len(f.Body))
}

// validFrameID : 4 caractères A-Z / 0-9.
func validFrameID(b []byte) bool {
	if len(b) != 4 {
		return false
	}
	for _, c := range b {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// parseFrames décode les trames d'un tag déjà lu en mémoire.
// data : contenu du tag SANS l'en-tête de 10 octets (ni extended header).
// version : 3 ou 4 (taille de trame big-endian brute en 2.3, synchsafe en 2.4).
// S'arrête proprement au premier octet de padding (0x00).
func parseFrames(data []byte, version byte) ([]Frame, error) {
	var frames []Frame
	pos := 0

	for pos+10 <= len(data) {
		if data[pos] == 0 {
			break // padding : fin des trames
		}
		idBytes := data[pos : pos+4]
		if !validFrameID(idBytes) {
			return frames, fmt.Errorf("identifiant de trame invalide %q à l'offset %d", idBytes, pos)
		}

		var size uint32
		switch version {
		case 4:
			s, err := unsynchsafe(data[pos+4 : pos+8])
			if err != nil {
				return frames, fmt.Errorf("taille de trame %s: %w", idBytes, err)
			}
			size = s
		case 3:
			size = be.Uint32(data[pos+4 : pos+8])
		default:
			return frames, fmt.Errorf("version ID3v2.%d non supportée", version)
		}

		formatFlags := data[pos+9]
		bodyStart := pos + 10
		bodyEnd := bodyStart + int(size)
		if bodyEnd > len(data) {
			return frames, fmt.Errorf("trame %s tronquée (taille %d, reste %d)", idBytes, size, len(data)-bodyStart)
		}

		body := data[bodyStart:bodyEnd]
		if version == 4 && formatFlags&frameFlagDLI != 0 && len(body) >= 4 {
			// le data length indicator précède le corps ; on le retire
			body = body[4:]
		}
		if version == 4 && formatFlags&frameFlagUnsync != 0 {
			body = deunsync(body)
		}

		// copie défensive : data peut être réutilisé par l'appelant
		frames = append(frames, Frame{ID: string(idBytes), Body: append([]byte(nil), body...)})
		pos = bodyEnd
	}
	return frames, nil
}

// renderFrames sérialise les trames au format v2.4 (tailles synchsafe,
// flags à zéro), dans l'ordre donné.
func renderFrames(frames []Frame) []byte {
	var out []byte
	for _, f := range frames {
		if len(f.ID) != 4 {
			continue // trame corrompue, ne pas propager
		}
		out = append(out, f.ID...)
		size := synchsafe(uint32(len(f.Body)))
		out = append(out, size[:]...)
		out = append(out, 0x00, 0x00) // status + format flags
		out = append(out, f.Body...)
	}
	return out
}
