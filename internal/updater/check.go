package updater

import (
	"context"
	"fmt"
)

// BuildCheck contient le résultat de la vérification
type BuildCheck struct {
	LocalVersion string           // version locale (vide si ffmpeg est absent)
	LatestBuild  *FfmpegBuildInfo // info complète de la dernière build distante
	Installed    bool             // true si un binaire ffmpeg local a répondu
}

// CheckFfmpegBuild rapproche la version locale de la dernière build GitHub.
// localVer vide signifie qu'aucun binaire n'a été trouvé.
func CheckFfmpegBuild(ctx context.Context, localVer string) (*BuildCheck, error) {
	latest, err := GetLatestFfmpegBuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("impossible de récupérer la build GitHub : %w", err)
	}

	return &BuildCheck{
		LocalVersion: localVer,
		LatestBuild:  latest,
		Installed:    localVer != "",
	}, nil
}

func (b BuildCheck) GetDownloadLink(system string) string {
	if system == "windows" {
		return b.LatestBuild.WindowsBuild.BrowserDownloadURL
	}
	return b.LatestBuild.LinuxBuild.BrowserDownloadURL
}
