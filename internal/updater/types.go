package updater

import (
	"time"
)

// FfmpegAsset représente une archive binaire Windows ou Linux.
type FfmpegAsset struct {
	Name               string
	BrowserDownloadURL string
	ContentType        string
}

// FfmpegBuildInfo contient les métadonnées de la dernière build publiée
// et les deux archives spécifiques à l'installation.
type FfmpegBuildInfo struct {
	TagName      string
	Name         string
	PublishedAt  time.Time
	HTMLURL      string
	WindowsBuild FfmpegAsset
	LinuxBuild   FfmpegAsset
}
