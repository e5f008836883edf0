package model

import "fmt"

// constantes pour les formats de fichiers produits par le pipeline
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatLRC Format = "lrc"
	FormatTXT Format = "txt"
)

// du format en chaine à la constante de type Format, return une erreur si format inconnu
func ParseFormat(s string) (Format, error) {
	switch s {
	case "mp3":
		return FormatMP3, nil
	case "lrc":
		return FormatLRC, nil
	case "txt":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %s", s)
	}
}

// IsAudio indique si le format désigne un conteneur audio embarquable.
func (f Format) IsAudio() bool {
	return f == FormatMP3
}

// IsTextual indique si le format est purement textuel (export).
func (f Format) IsTextual() bool {
	return f == FormatLRC || f == FormatTXT
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
