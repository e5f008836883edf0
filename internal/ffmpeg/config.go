package ffmpeg

import "strconv"

// Config représente les flags ajoutables quand on invoque ffmpeg
type Config struct {
	Codec      string // codec audio de sortie (libmp3lame)
	Quality    int    // -q:a : 0 (meilleur) à 9
	Overwrite  bool   // true => -y, écraser la sortie sans question
	HideBanner bool   // true => -hide_banner, sortie plus lisible dans les logs
}

// NewConfig initialise une configuration standard de conversion vers MP3 :
// libmp3lame en qualité VBR 2, mêmes paramètres que l'outil d'origine.
func NewConfig() *Config {
	return &Config{
		Codec:      "libmp3lame",
		Quality:    2,
		Overwrite:  true,
		HideBanner: true,
	}
}

// BuildArgs construit la slice des arguments à passer à ffmpeg.
func (c *Config) BuildArgs(inPath, outPath string) []string {
	args := make([]string, 0, 10)
	if c.HideBanner {
		args = append(args, "-hide_banner")
	}
	if c.Overwrite {
		args = append(args, "-y")
	}
	args = append(args, "-i", inPath)
	args = append(args, "-codec:a", c.Codec)
	args = append(args, "-q:a", strconv.Itoa(c.Quality))
	args = append(args, outPath)
	return args
}
