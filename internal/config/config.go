package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/patrickprogramme/lyricsync/internal/assets"
	"github.com/patrickprogramme/lyricsync/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir string `yaml:"output_dir"`
	TempDir   string `yaml:"temp_dir"` // répertoire de travail, injecté au pipeline (jamais codé en dur)

	// Paroles embarquées
	Language        string `yaml:"language"` // code ISO-639-2 des trames SYLT/USLT
	MaxWordsPerLine int    `yaml:"max_words_per_line"`

	// Export LRC
	SaveLRC            bool `yaml:"save_lrc"`
	CopyLRCToClipboard bool `yaml:"copy_lrc_to_clipboard"`

	// Mode automatique (aucun prompt interactif)
	AutoMode bool `yaml:"auto_mode"`

	// ffmpeg
	Ffmpeg struct {
		Name             string `yaml:"name"`
		Path             string `yaml:"path"`
		AutoVersionCheck bool   `yaml:"auto_version_check"`

		// ResolvedPath contient le chemin effectif vers l'exécutable
		ResolvedPath string `yaml:"-"`
	} `yaml:"ffmpeg"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	// Chemins
	c.OutputDir = "."
	c.TempDir = "" // vide => os.TempDir()

	// Paroles
	c.Language = "eng"
	c.MaxWordsPerLine = 8

	// Export LRC
	c.SaveLRC = false
	c.CopyLRCToClipboard = false

	// Mode automatique
	c.AutoMode = false

	// ffmpeg
	c.Ffmpeg.Name = "ffmpeg"
	c.Ffmpeg.Path = ""
	c.Ffmpeg.AutoVersionCheck = true

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = "lyricsync.yaml"
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	// lire le YAML brut et déserialiser dans cfg (les champs présents écraseront les defaults)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		// re-normaliser au cas où la migration a modifié des valeurs
		cfg.normalizeConfig()
	}

	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	// lire l'asset embarqué via assets.Embedded et DefaultConfigAsset
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	// s'assurer que le dossier parent existe
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("échec mkdir pour la configuration %s : %w", filepath.Dir(dstPath), err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	// log utile pour le debugging
	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	c.OutputDir = filepath.Clean(c.OutputDir)
	if strings.TrimSpace(c.TempDir) != "" {
		c.TempDir = filepath.Clean(c.TempDir)
	}

	// Trim and normalize strings
	c.Language = strings.TrimSpace(strings.ToLower(c.Language))
	if len(c.Language) != 3 {
		c.Language = "eng"
	}

	if c.MaxWordsPerLine <= 0 {
		c.MaxWordsPerLine = 8
	}

	// centraliser la résolution/normalisation de ffmpeg
	c.ResolveFfmpegPath()
}

// ResolveFfmpegPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.Ffmpeg.Name ou cfg.Ffmpeg.Path.
func (c *Config) ResolveFfmpegPath() {
	if c == nil {
		return
	}

	// Normaliser le nom et ajouter .exe sur Windows si nécessaire
	c.Ffmpeg.Name = strings.TrimSpace(c.Ffmpeg.Name)
	if c.Ffmpeg.Name == "" {
		c.Ffmpeg.Name = "ffmpeg"
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.Ffmpeg.Name), ".exe") {
		c.Ffmpeg.Name = c.Ffmpeg.Name + ".exe"
	}

	// Résolution du chemin
	// si cfg.Path est vide -> chemin vide, le binaire sera cherché dans le PATH
	exeName := c.Ffmpeg.Name
	cfgPath := strings.TrimSpace(c.Ffmpeg.Path)
	if cfgPath == "" {
		c.Ffmpeg.ResolvedPath = ""
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.Ffmpeg.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.Ffmpeg.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
