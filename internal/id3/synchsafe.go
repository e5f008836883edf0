// Package id3 implémente un lecteur/écrivain minimal de conteneurs ID3v2
// pour fichiers MP3, centré sur les trames SYLT (paroles synchronisées) et
// USLT (paroles brutes). Aucune bibliothèque ID3 de confiance n'étant
// retenue, le codec est écrit depuis la grammaire des trames ID3v2.3/2.4 et
// testé isolément du reste du pipeline.
//
// Les tags sont relus en version 2.3 ou 2.4 et toujours réécrits en 2.4.
// Les trames étrangères (TIT2, APIC, ...) sont conservées telles quelles.
package id3

import (
	"encoding/binary"
	"fmt"
)

var be = binary.BigEndian

// synchsafe encode une valeur sur 4 octets de 7 bits utiles chacun
// (le bit de poids fort de chaque octet reste à zéro, pour ne jamais
// produire un faux sync MPEG 0xFF dans l'en-tête du tag).
func synchsafe(v uint32) [4]byte {
	return [4]byte{
		byte(v >> 21 & 0x7F),
		byte(v >> 14 & 0x7F),
		byte(v >> 7 & 0x7F),
		byte(v & 0x7F),
	}
}

// unsynchsafe décode 4 octets synchsafe ; erreur si un bit de poids fort est levé.
func unsynchsafe(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, fmt.Errorf("synchsafe: besoin de 4 octets, reçu %d", len(b))
	}
	for i := 0; i < 4; i++ {
		if b[i]&0x80 != 0 {
			return 0, fmt.Errorf("synchsafe: bit 7 levé à l'octet %d", i)
		}
	}
	return uint32(b[0])<<21 | uint32(b[1])<<14 | uint32(b[2])<<7 | uint32(b[3]), nil
}

// deunsync inverse le schéma d'unsynchronisation ID3 : chaque séquence
// 0xFF 0x00 redevient 0xFF. Appliqué aux données de tag (v2.3, flag global)
// ou au corps d'une trame (v2.4, flag par trame).
func deunsync(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++ // saute le 0x00 inséré
		}
	}
	return out
}
