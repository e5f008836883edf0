package id3

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const tagHeaderSize = 10

// flags d'en-tête de tag
const (
	tagFlagUnsync   = 0x80
	tagFlagExtended = 0x40
	tagFlagFooter   = 0x10
)

// ErrNoTag signale un fichier sans conteneur ID3v2. Ce n'est pas une erreur
// fatale : Open crée alors un tag vide, et Verify rapporte simplement
// l'absence des trames.
var ErrNoTag = errors.New("aucun tag ID3v2 dans le fichier")

// File est le conteneur de tag d'un MP3 : il possède le fichier sur disque
// pour la durée d'une opération d'embarquement. Ne pas partager entre
// goroutines pour un même chemin — l'appelant sérialise les accès par fichier.
type File struct {
	path        string
	version     byte // version lue (3 ou 4) ; 4 si tag créé
	frames      []Frame
	audioOffset int64 // début des données audio dans le fichier d'origine
	hadTag      bool
}

// Open lit le conteneur ID3v2 du fichier. Si le fichier n'a pas de tag, un
// tag vide est créé en mémoire (il ne sera écrit qu'au Save). Les trames
// existantes sont toutes conservées, y compris celles qu'on ne sait pas
// interpréter.
func Open(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	header := make([]byte, tagHeaderSize)
	n, err := io.ReadFull(fh, header)
	if err != nil && n < tagHeaderSize {
		// fichier plus court qu'un en-tête de tag : pas de tag
		return &File{path: path, version: 4}, nil
	}

	if string(header[0:3]) != "ID3" {
		return &File{path: path, version: 4}, nil
	}

	version := header[3]
	if version != 3 && version != 4 {
		return nil, fmt.Errorf("%s: version ID3v2.%d non supportée", path, version)
	}
	flags := header[5]
	size, err := unsynchsafe(header[6:10])
	if err != nil {
		return nil, fmt.Errorf("%s: taille de tag invalide: %w", path, err)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(fh, data); err != nil {
		return nil, fmt.Errorf("%s: tag tronqué: %w", path, err)
	}

	audioOffset := int64(tagHeaderSize) + int64(size)
	if flags&tagFlagFooter != 0 {
		audioOffset += tagHeaderSize
	}

	// unsynchronisation globale (schéma v2.3) : défaire avant de parser
	if flags&tagFlagUnsync != 0 {
		data = deunsync(data)
	}

	// extended header : on le saute, il n'est pas réécrit
	if flags&tagFlagExtended != 0 {
		data, err = skipExtendedHeader(data, version)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	frames, err := parseFrames(data, version)
	if err != nil {
		return nil, fmt.Errorf("%s: analyse des trames: %w", path, err)
	}

	return &File{
		path:        path,
		version:     version,
		frames:      frames,
		audioOffset: audioOffset,
		hadTag:      true,
	}, nil
}

// skipExtendedHeader retire l'extended header du début de data.
func skipExtendedHeader(data []byte, version byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("extended header tronqué")
	}
	var extLen int
	switch version {
	case 4:
		// taille synchsafe, auto-incluse
		s, err := unsynchsafe(data[0:4])
		if err != nil {
			return nil, fmt.Errorf("extended header: %w", err)
		}
		extLen = int(s)
	case 3:
		// taille brute, en-tête de 4 octets NON inclus
		extLen = int(be.Uint32(data[0:4])) + 4
	}
	if extLen < 4 || extLen > len(data) {
		return nil, fmt.Errorf("extended header de taille incohérente (%d)", extLen)
	}
	return data[extLen:], nil
}

// HadTag indique si le fichier possédait déjà un conteneur ID3v2 à l'ouverture.
func (f *File) HadTag() bool {
	return f.hadTag
}

// Frames retourne toutes les trames portant l'identifiant donné.
func (f *File) Frames(id string) []Frame {
	var out []Frame
	for _, fr := range f.frames {
		if fr.ID == id {
			out = append(out, fr)
		}
	}
	return out
}

// ReplaceFrame supprime TOUTES les instances existantes de l'identifiant
// puis ajoute la nouvelle trame : on remplace, on n'ajoute jamais de doublon.
func (f *File) ReplaceFrame(id string, body []byte) {
	kept := f.frames[:0]
	for _, fr := range f.frames {
		if fr.ID != id {
			kept = append(kept, fr)
		}
	}
	f.frames = append(kept, Frame{ID: id, Body: append([]byte(nil), body...)})
}

// RemoveFrames supprime toutes les instances de l'identifiant donné.
func (f *File) RemoveFrames(id string) {
	kept := f.frames[:0]
	for _, fr := range f.frames {
		if fr.ID != id {
			kept = append(kept, fr)
		}
	}
	f.frames = kept
}

// Save réécrit le fichier : nouveau tag (toujours en ID3v2.4) suivi des
// données audio d'origine. L'écriture passe par un fichier temporaire du
// même répertoire puis un rename — en cas d'échec le fichier de destination
// reste dans son état antérieur.
func (f *File) Save() error {
	body := renderFrames(f.frames)

	header := make([]byte, 0, tagHeaderSize)
	header = append(header, 'I', 'D', '3', 4, 0, 0)
	size := synchsafe(uint32(len(body)))
	header = append(header, size[:]...)

	src, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open source %s: %w", f.path, err)
	}
	defer src.Close()

	if _, err := src.Seek(f.audioOffset, io.SeekStart); err != nil {
		return fmt.Errorf("seek audio data: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".tmp-id3-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(header); err != nil {
		return fmt.Errorf("write tag header: %w", err)
	}
	if _, err := tmp.Write(body); err != nil {
		return fmt.Errorf("write tag frames: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		return fmt.Errorf("copy audio data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	_ = os.Chmod(tmpName, 0o644)

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}
