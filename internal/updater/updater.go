// Package updater checks a remote JSON update feed for newer releases and
// downloads update artifacts. The feed is a small document, typically hosted
// as a raw file on GitHub:
//
//	{
//	  "latest_version": "1.1.0",
//	  "minimum_supported_version": "1.0.0",
//	  "download_url": "https://example.org/releases/winmate-1.1.0.exe",
//	  "changelog": "Bug fixes."
//	}
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const userAgent = "winmate-updater/1.0"

// Status of an update check.
type Status string

const (
	StatusError           Status = "error"
	StatusNoUpdate        Status = "no_update"
	StatusUpdateAvailable Status = "update_available"
)

// Info describes a downloadable update.
type Info struct {
	Version                 string `json:"version"`
	DownloadURL             string `json:"download_url"`
	Changelog               string `json:"changelog,omitempty"`
	MinimumSupportedVersion string `json:"minimum_supported_version,omitempty"`
}

// CheckResult is the outcome of a feed check. Message is written for direct
// display to the user.
type CheckResult struct {
	Status         Status `json:"status"`
	Message        string `json:"message"`
	CurrentVersion string `json:"current_version"`
	RemoteVersion  string `json:"remote_version,omitempty"`
	Update         *Info  `json:"update,omitempty"`
}

type feed struct {
	LatestVersion           string `json:"latest_version"`
	MinimumSupportedVersion string `json:"minimum_supported_version"`
	DownloadURL             string `json:"download_url"`
	Changelog               string `json:"changelog"`
}

// Updater checks the feed and downloads updates.
type Updater struct {
	feedURL        string
	currentVersion string
	client         *http.Client
	logger         *slog.Logger
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(u *Updater) { u.client = client }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Updater) { u.logger = logger }
}

// New creates an Updater for the given feed URL and running version.
func New(feedURL, currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		feedURL:        feedURL,
		currentVersion: currentVersion,
		client:         &http.Client{Timeout: 10 * time.Second},
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Check fetches the feed and reports whether a newer version is available.
// Failures are folded into the result so callers can always display it.
func (u *Updater) Check(ctx context.Context) CheckResult {
	result := CheckResult{CurrentVersion: u.currentVersion}

	if u.feedURL == "" {
		result.Status = StatusError
		result.Message = "Update feed URL is not configured."
		u.logger.Warn(result.Message)
		return result
	}

	f, err := u.fetchFeed(ctx)
	if err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("Update check failed: %v", err)
		u.logger.Error("update check failed", "err", err)
		return result
	}

	latest := strings.TrimSpace(f.LatestVersion)
	downloadURL := strings.TrimSpace(f.DownloadURL)
	if latest == "" || downloadURL == "" {
		result.Status = StatusError
		result.Message = "Update feed is missing required fields (latest_version or download_url)."
		u.logger.Error(result.Message)
		return result
	}

	result.RemoteVersion = latest
	u.logger.Info("update check", "current", u.currentVersion, "remote", latest)

	if !remoteIsNewer(u.currentVersion, latest) {
		result.Status = StatusNoUpdate
		result.Message = fmt.Sprintf("You are up to date. Current version: %s.", u.currentVersion)
		return result
	}

	info := &Info{
		Version:                 latest,
		DownloadURL:             downloadURL,
		Changelog:               f.Changelog,
		MinimumSupportedVersion: strings.TrimSpace(f.MinimumSupportedVersion),
	}
	result.Status = StatusUpdateAvailable
	result.Update = info

	lines := []string{
		fmt.Sprintf("A new version is available: %s", latest),
		fmt.Sprintf("Current version: %s", u.currentVersion),
	}
	if info.Changelog != "" {
		lines = append(lines, "", "Changelog:", info.Changelog)
	}
	result.Message = strings.Join(lines, "\n")
	return result
}

func (u *Updater) fetchFeed(ctx context.Context) (feed, error) {
	u.logger.Info("fetching update feed", "url", u.feedURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.feedURL, nil)
	if err != nil {
		return feed{}, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return feed{}, fmt.Errorf("reach update server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return feed{}, fmt.Errorf("update feed HTTP error: %d", resp.StatusCode)
	}

	var f feed
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return feed{}, fmt.Errorf("invalid update feed JSON: %w", err)
	}
	return f, nil
}

// Download fetches the update artifact into destDir (a temp directory when
// empty) and returns the local path.
func (u *Updater) Download(ctx context.Context, info Info, destDir string) (string, error) {
	if info.DownloadURL == "" {
		return "", fmt.Errorf("update download URL is empty")
	}

	if destDir == "" {
		dir, err := os.MkdirTemp("", "winmate_update_")
		if err != nil {
			return "", fmt.Errorf("create download directory: %w", err)
		}
		destDir = dir
	} else if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	destPath := filepath.Join(destDir, downloadFilename(info))

	u.logger.Info("downloading update", "url", info.DownloadURL, "dest", destPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, info.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download HTTP error: %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create update file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("write update file: %w", err)
	}

	u.logger.Info("update downloaded", "dest", destPath)
	return destPath, nil
}

// downloadFilename derives a local filename from the download URL path,
// ignoring any query string or fragment.
func downloadFilename(info Info) string {
	fallback := fmt.Sprintf("winmate_%s.exe", info.Version)

	parsed, err := url.Parse(info.DownloadURL)
	if err != nil {
		return fallback
	}
	if parsed.Path == "" || strings.HasSuffix(parsed.Path, "/") {
		return fallback
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		return fallback
	}
	return name
}

// parseVersion turns "1.2.3" into comparable integer parts. Trailing
// non-numeric suffixes like "-beta1" are ignored.
func parseVersion(v string) []int {
	parts := strings.Split(v, ".")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n := 0
		seen := false
		for _, ch := range p {
			if !unicode.IsDigit(ch) {
				break
			}
			n = n*10 + int(ch-'0')
			seen = true
		}
		if !seen {
			nums = append(nums, 0)
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

// remoteIsNewer reports whether remote > current.
func remoteIsNewer(current, remote string) bool {
	c, r := parseVersion(current), parseVersion(remote)
	for i := 0; i < len(c) || i < len(r); i++ {
		var cv, rv int
		if i < len(c) {
			cv = c[i]
		}
		if i < len(r) {
			rv = r[i]
		}
		if rv != cv {
			return rv > cv
		}
	}
	return false
}
