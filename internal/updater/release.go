package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/patrickprogramme/lyricsync/pkg/github"
)

// Dépôt publiant des builds statiques de ffmpeg pour Windows et Linux.
const (
	buildsOwner = "BtbN"
	buildsRepo  = "FFmpeg-Builds"

	windowsAssetSuffix = "win64-gpl.zip"
	linuxAssetSuffix   = "linux64-gpl.tar.xz"
)

type rawRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		ContentType        string `json:"content_type"`
	} `json:"assets"`
}

// GetLatestFfmpegBuild récupère la dernière build ffmpeg publiée et en
// extrait les archives Windows et Linux.
func GetLatestFfmpegBuild(ctx context.Context) (*FfmpegBuildInfo, error) {
	data, err := github.FetchReleaseJSON(ctx, buildsOwner, buildsRepo)
	if err != nil {
		return nil, err
	}

	var raw rawRelease
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("décodage JSON: %w", err)
	}

	info := &FfmpegBuildInfo{
		TagName:     raw.TagName,
		Name:        raw.Name,
		PublishedAt: raw.PublishedAt,
		HTMLURL:     raw.HTMLURL,
	}

	// les noms d'assets sont versionnés, on matche sur le suffixe
	for _, a := range raw.Assets {
		switch {
		case strings.HasSuffix(a.Name, windowsAssetSuffix):
			info.WindowsBuild = FfmpegAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		case strings.HasSuffix(a.Name, linuxAssetSuffix):
			info.LinuxBuild = FfmpegAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		}
	}

	if info.WindowsBuild.BrowserDownloadURL == "" {
		return nil, fmt.Errorf("archive Windows introuvable")
	}
	if info.LinuxBuild.BrowserDownloadURL == "" {
		return nil, fmt.Errorf("archive Linux introuvable")
	}

	return info, nil
}
