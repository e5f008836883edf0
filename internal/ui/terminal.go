package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/patrickprogramme/lyricsync/internal/clipboard"
)

type terminalUI struct {
	reader *bufio.Reader
}

func NewTerminal() Interface {
	return &terminalUI{reader: bufio.NewReader(os.Stdin)}
}

func (t *terminalUI) GetAudioPath(ctx context.Context) (string, error) {
	// 1) clipboard : si le contenu pointe vers un fichier existant, on le propose
	if clip, err := clipboard.ReadTrimmed(); err == nil && clip != "" {
		if isExistingFile(clip) {
			t.PrintInfo(ctx, fmt.Sprintf("Utilisation du fichier depuis le presse-papier: %s", clip))
			return clip, nil
		}
	}
	// 2) prompt
	for {
		fmt.Print("Entrez le chemin du fichier audio: ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("lecture stdin: %w", err)
		}
		path := strings.TrimSpace(input)
		path = strings.Trim(path, `"'`)
		if isExistingFile(path) {
			return path, nil
		}
		fmt.Println("❌ Fichier introuvable. Essayez à nouveau.")
	}
}

// GetTranscript propose le presse-papier puis bascule sur la saisie directe.
// La saisie se termine par une ligne vide.
func (t *terminalUI) GetTranscript(ctx context.Context) (string, error) {
	if clip, err := clipboard.ReadTrimmed(); err == nil && strings.TrimSpace(clip) != "" {
		// aperçu des premières lignes
		lines := strings.SplitN(clip, "\n", 6)
		preview := strings.Join(lines[:min(len(lines), 5)], "\n")
		fmt.Println("Aperçu du presse-papier :")
		fmt.Println("────────────────────────")
		fmt.Println(preview)
		if len(strings.Split(clip, "\n")) > 5 {
			fmt.Println("...")
		}
		fmt.Println("────────────────────────")
		fmt.Print("(o) Utiliser ce texte comme paroles  (n) Saisir manuellement  ? [o/n] : ")

		resp, err := t.reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("lecture stdin: %w", err)
		}
		switch strings.TrimSpace(strings.ToLower(resp)) {
		case "o", "oui", "y", "yes":
			return clip, nil
		}
	}

	fmt.Println("Entrez les paroles (terminez par une ligne vide) :")
	var b strings.Builder
	for {
		line, err := t.reader.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			break
		}
		b.WriteString(trimmed)
		b.WriteString("\n")
		if err != nil { // EOF après la dernière ligne
			break
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("aucun texte saisi")
	}
	return text, nil
}

func (t *terminalUI) WaitForExit(ctx context.Context) error {
	fmt.Println("\n\nAppuyez sur Ctrl+C pour quitter.")

	// Prépare le canal pour les signaux d'interruption
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done(): // Context annulé ailleurs
		return ctx.Err()
	case <-sigCh: // Reçu Ctrl+C (SIGINT ou SIGTERM)
		return nil
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Println(s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(os.Stderr, s)
}

func isExistingFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
