package timing

import "strings"

// artefacts de transcription courants à retirer du texte brut
var transcriptionArtifacts = []string{
	"[Music]", "[Applause]", "[Laughter]",
	"(Music)", "(Applause)", "(Laughter)",
}

// CleanText normalise un transcript brut : retrait des artefacts de
// transcription ([Music], etc.) et réduction des espaces multiples.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	for _, a := range transcriptionArtifacts {
		text = strings.ReplaceAll(text, a, "")
	}
	return strings.Join(strings.Fields(text), " ")
}

// Words découpe le transcript en tokens par espaces, après nettoyage.
// C'est la tokenisation attendue en entrée de Allocate.
func Words(text string) []string {
	return strings.Fields(CleanText(text))
}
