package id3

import (
	"fmt"

	"github.com/patrickprogramme/lyricsync/pkg/model"
)

// VerifyResult est le compte-rendu de relecture après embarquement.
type VerifyResult struct {
	HasSylt     bool
	HasUslt     bool
	SyltEntries int
	Err         error
}

func (r VerifyResult) String() string {
	return fmt.Sprintf("VerifyResult{sylt=%t, uslt=%t, entries=%d, err=%v}",
		r.HasSylt, r.HasUslt, r.SyltEntries, r.Err)
}

// Verify relit le fichier et rapporte la présence des trames SYLT/USLT et
// le nombre d'entrées synchronisées. Un fichier sans aucun tag n'est PAS
// une erreur : tout à false/zéro. Les erreurs d'accès ou de décodage sont
// rapportées dans Err, jamais propagées en panique.
func Verify(path string) VerifyResult {
	var res VerifyResult

	f, err := Open(path)
	if err != nil {
		res.Err = err
		return res
	}

	if sylt := f.Frames(FrameSYLT); len(sylt) > 0 {
		res.HasSylt = true
		entries, derr := DecodeSYLT(sylt[0].Body)
		if derr != nil {
			res.Err = fmt.Errorf("décodage SYLT: %w", derr)
		}
		res.SyltEntries = len(entries)
	}
	if uslt := f.Frames(FrameUSLT); len(uslt) > 0 {
		res.HasUslt = true
	}
	return res
}

// ExtractSYLT relit les entrées synchronisées d'un fichier (outil de debug).
// Retourne la première trame SYLT décodée, ou ErrNoTag si absente.
func ExtractSYLT(path string) ([]model.SyltEntry, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	sylt := f.Frames(FrameSYLT)
	if len(sylt) == 0 {
		return nil, fmt.Errorf("%w: pas de trame SYLT", ErrNoTag)
	}
	return DecodeSYLT(sylt[0].Body)
}
