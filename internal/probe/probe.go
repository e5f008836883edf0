// Package probe estime la durée d'un MP3 en parcourant ses en-têtes de
// trames MPEG. C'est un estimateur, pas un décodeur : aucune donnée audio
// n'est décompressée. En cas d'échec l'appelant reçoit 0 et une erreur ;
// seul le flag -duration permet alors de poursuivre.
package probe

import (
	"fmt"
	"os"
)

// tables MPEG-1 Layer III
var bitrateTable = map[int]int{
	0x1: 32000, 0x2: 40000, 0x3: 48000, 0x4: 56000,
	0x5: 64000, 0x6: 80000, 0x7: 96000, 0x8: 112000,
	0x9: 128000, 0xA: 160000, 0xB: 192000, 0xC: 224000,
	0xD: 256000, 0xE: 320000,
}

var sampleRateTable = map[int]int{
	0x0: 44100, 0x1: 48000, 0x2: 32000,
}

// échantillons par trame en MPEG-1 Layer III
const samplesPerFrame = 1152

type frameHeader struct {
	bitrate    int
	sampleRate int
	padding    int
}

// parseFrameHeader décode un en-tête de trame MPEG-1 Layer III.
func parseFrameHeader(b []byte) (frameHeader, error) {
	if len(b) < 4 {
		return frameHeader{}, fmt.Errorf("trame trop courte")
	}
	// les 11 premiers bits doivent être levés (frame sync)
	if b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
		return frameHeader{}, fmt.Errorf("frame sync invalide")
	}
	// MPEG-1 (bits version = 11) Layer III (bits layer = 01) uniquement
	if b[1]&0x18 != 0x18 || b[1]&0x06 != 0x02 {
		return frameHeader{}, fmt.Errorf("version/layer non supporté")
	}

	bitrate, ok := bitrateTable[int(b[2]>>4&0x0F)]
	if !ok {
		return frameHeader{}, fmt.Errorf("index de bitrate invalide")
	}
	sampleRate, ok := sampleRateTable[int(b[2]>>2&0x03)]
	if !ok {
		return frameHeader{}, fmt.Errorf("index de sample rate invalide")
	}

	return frameHeader{
		bitrate:    bitrate,
		sampleRate: sampleRate,
		padding:    int(b[2] >> 1 & 0x01),
	}, nil
}

// frameSize : (144 * bitrate) / sampleRate + padding
func (h frameHeader) frameSize() int {
	return 144*h.bitrate/h.sampleRate + h.padding
}

// Duration parcourt les trames du fichier et cumule leur durée.
// Le tag ID3v2 de tête est sauté ; les octets non reconnus sont ignorés
// octet par octet (resynchronisation). Retourne une erreur si aucune trame
// valide n'est trouvée.
func Duration(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("lecture %s: %w", path, err)
	}

	pos := skipID3(data)
	var seconds float64
	frames := 0

	for pos+4 <= len(data) {
		h, err := parseFrameHeader(data[pos:])
		if err != nil {
			pos++ // resync : chercher le prochain frame sync
			continue
		}
		size := h.frameSize()
		if size <= 4 {
			pos++
			continue
		}
		seconds += float64(samplesPerFrame) / float64(h.sampleRate)
		frames++
		pos += size
	}

	if frames == 0 {
		return 0, fmt.Errorf("%s: aucune trame MPEG valide", path)
	}
	return seconds, nil
}

// skipID3 retourne l'offset du premier octet après le tag ID3v2 de tête,
// ou 0 si le fichier n'en a pas.
func skipID3(data []byte) int {
	if len(data) < 10 || string(data[0:3]) != "ID3" {
		return 0
	}
	// taille synchsafe sur 4 octets de 7 bits
	size := int(data[6]&0x7F)<<21 | int(data[7]&0x7F)<<14 |
		int(data[8]&0x7F)<<7 | int(data[9]&0x7F)
	end := 10 + size
	if end > len(data) {
		return 0
	}
	return end
}
