package ui

import (
	"context"
)

type Interface interface {
	// GetAudioPath doit renvoyer le chemin d'un fichier audio existant.
	// Implémentation terminale : priorité clipboard -> prompt
	GetAudioPath(ctx context.Context) (string, error)

	// GetTranscript renvoie le texte brut des paroles/transcript.
	// Implémentation terminale : priorité clipboard (avec confirmation) -> saisie
	GetTranscript(ctx context.Context) (string, error)

	// WaitForExit bloque jusqu'à ce qu'un signal d'annulation soit reçu via ctx (Ctrl+C).
	WaitForExit(ctx context.Context) error

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
