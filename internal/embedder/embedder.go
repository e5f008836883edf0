// Package embedder orchestre l'embarquement de paroles synchronisées dans
// un MP3 : préparation du fichier (conversion ou copie), construction des
// trames SYLT/USLT, remplacement dans le conteneur de tag, vérification par
// relecture. Chaque invocation traite UN fichier de bout en bout, sans état
// partagé — deux embarquements simultanés vers le même chemin de sortie
// doivent être sérialisés par l'appelant.
package embedder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/lyricsync/internal/ffmpeg"
	"github.com/patrickprogramme/lyricsync/internal/fsutil"
	"github.com/patrickprogramme/lyricsync/internal/id3"
	"github.com/patrickprogramme/lyricsync/pkg/model"
)

// ErrBadInput signale une requête invalide : fichier source manquant ou
// aucun contenu à embarquer. Aucune sortie partielle n'est produite.
var ErrBadInput = errors.New("requête d'embarquement invalide")

// Request décrit une opération d'embarquement complète.
type Request struct {
	AudioPath  string            // fichier source, MP3 ou non
	Units      []model.TimedWord // mots horodatés déjà validés ; vide => USLT seul
	FullText   string            // texte complet pour le fallback USLT
	OutputPath string            // destination du MP3 embarqué
}

// Result est le compte-rendu structuré d'un embarquement.
type Result struct {
	OutputPath   string
	Converted    bool // passé par ffmpeg
	Degraded     bool // copie verbatim faute de conversion possible
	SyltEmbedded bool
	UsltEmbedded bool
	SyltEntries  int
	Verification id3.VerifyResult
	Logs         []string
}

// Embedder porte les dépendances du pipeline. Le répertoire de travail est
// injecté à la construction, jamais codé en dur.
type Embedder struct {
	conv ffmpeg.Interface
	lang string
}

// New construit un Embedder. conv peut être un client ffmpeg indisponible :
// le pipeline dégradera en copie sans conversion.
func New(conv ffmpeg.Interface, lang string) *Embedder {
	if len(lang) != 3 {
		lang = id3.DefaultLanguage
	}
	return &Embedder{conv: conv, lang: lang}
}

// Embed exécute le pipeline complet pour une requête. L'erreur retournée ne
// concerne que les échecs structurels (entrée invalide, conteneur
// illisible/inécrivable) ; les dégradations — conversion impossible, liste
// de timestamps vide, vérification divergente — sont consignées dans les
// logs et le Result, et le pipeline continue avec ce qu'il peut.
func (e *Embedder) Embed(ctx context.Context, req Request) (res Result, err error) {
	var j Journal
	res = Result{OutputPath: req.OutputPath}

	// le journal accompagne le résultat même en cas d'échec
	defer func() { res.Logs = j.Lines() }()

	// --- validations d'entrée : échec structuré, pas de sortie partielle ---
	if req.AudioPath == "" || req.OutputPath == "" {
		j.Errorf("chemins source/destination manquants")
		return res, fmt.Errorf("%w: chemins source/destination manquants", ErrBadInput)
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		j.Errorf("fichier source inaccessible : %v", err)
		return res, fmt.Errorf("%w: fichier source %s: %v", ErrBadInput, req.AudioPath, err)
	}
	if len(req.Units) == 0 && strings.TrimSpace(req.FullText) == "" {
		j.Errorf("ni timestamps ni texte : rien à embarquer")
		return res, fmt.Errorf("%w: rien à embarquer", ErrBadInput)
	}

	j.Infof("embarquement de %s vers %s", filepath.Base(req.AudioPath), filepath.Base(req.OutputPath))

	// --- étape 1 : s'assurer que la destination est un MP3 ---
	if err := e.ensureMP3(ctx, req.AudioPath, req.OutputPath, &res, &j); err != nil {
		return res, err
	}

	// --- étape 2 : construire les entrées SYLT ---
	entries := id3.EncodeSYLTEntries(req.Units)
	res.SyltEntries = len(entries)
	if len(entries) == 0 {
		j.Warnf("aucune entrée SYLT constructible, embarquement SYLT sauté (USLT seul)")
	} else {
		j.Infof("%d entrées SYLT construites", len(entries))
	}

	// --- étape 3 : remplacer les trames dans le conteneur ---
	f, err := id3.Open(req.OutputPath)
	if err != nil {
		j.Errorf("chargement du conteneur de tag : %v", err)
		return res, fmt.Errorf("chargement du tag de %s: %w", req.OutputPath, err)
	}
	if !f.HadTag() {
		j.Infof("pas de tag ID3 existant, création d'un nouveau conteneur")
	}

	if len(entries) > 0 {
		f.ReplaceFrame(id3.FrameSYLT, id3.EncodeSYLT(entries, e.lang))
		res.SyltEmbedded = true
		j.Infof("trame SYLT remplacée (%d entrées)", len(entries))
	}
	if text := strings.TrimSpace(req.FullText); text != "" {
		f.ReplaceFrame(id3.FrameUSLT, id3.EncodeUSLT(text, e.lang, ""))
		res.UsltEmbedded = true
		j.Infof("trame USLT remplacée (%d caractères)", len(text))
	} else {
		j.Warnf("texte complet vide, pas de fallback USLT")
	}

	if err := f.Save(); err != nil {
		res.SyltEmbedded = false
		res.UsltEmbedded = false
		j.Errorf("écriture du conteneur : %v", err)
		return res, fmt.Errorf("écriture du tag de %s: %w", req.OutputPath, err)
	}
	j.Infof("conteneur sauvegardé")

	// --- étape 4 : vérification par relecture ---
	res.Verification = id3.Verify(req.OutputPath)
	if res.Verification.Err != nil {
		j.Warnf("vérification incomplète : %v", res.Verification.Err)
	}
	if res.SyltEmbedded && res.Verification.SyltEntries == 0 {
		// divergence : avertissement, pas d'échec — le fichier peut rester valide
		j.Warnf("relecture : 0 entrée SYLT alors que %d ont été écrites", len(entries))
	} else {
		j.Infof("relecture : sylt=%t uslt=%t entrées=%d",
			res.Verification.HasSylt, res.Verification.HasUslt, res.Verification.SyltEntries)
	}

	return res, nil
}

// ensureMP3 amène le fichier source au chemin de sortie au format MP3 :
// copie directe si déjà MP3, conversion ffmpeg sinon, et copie verbatim en
// dernier recours (mode dégradé, clairement loggé).
func (e *Embedder) ensureMP3(ctx context.Context, src, dst string, res *Result, j *Journal) error {
	if ffmpeg.IsMP3(src) {
		j.Infof("source déjà MP3, copie vers la destination")
		if err := fsutil.CopyFile(src, dst); err != nil {
			j.Errorf("copie : %v", err)
			return fmt.Errorf("copie de %s: %w", src, err)
		}
		return nil
	}

	if e.conv != nil && e.conv.Available() {
		j.Infof("%s n'est pas un MP3, conversion ffmpeg...", filepath.Base(src))
		if err := e.conv.ConvertToMP3(ctx, src, dst); err == nil {
			j.Infof("conversion ffmpeg réussie")
			res.Converted = true
			return nil
		} else {
			j.Errorf("conversion ffmpeg : %v", err)
			j.Warnf("fallback : copie du fichier original sans conversion")
		}
	} else {
		j.Warnf("ffmpeg indisponible, impossible de convertir %s — copie directe", filepath.Base(src))
	}

	// mode dégradé : octets d'origine copiés verbatim
	if err := fsutil.CopyFile(src, dst); err != nil {
		j.Errorf("copie de secours : %v", err)
		return fmt.Errorf("copie de secours de %s: %w", src, err)
	}
	res.Degraded = true
	return nil
}
