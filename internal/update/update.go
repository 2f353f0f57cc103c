// Package update provides self-update from GitHub releases.
package update

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Release is the subset of the GitHub release response we need.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable release artifact.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// HTTPClient interface for mocking HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Updater handles the self-update process
type Updater struct {
	RepoOwner      string
	RepoName       string
	CurrentVersion string
	HTTPClient     HTTPClient
	Executable     string // path to current executable, empty means auto-detect
}

// NewUpdater creates an Updater pointed at the git-finfo releases
func NewUpdater(currentVersion string) *Updater {
	return &Updater{
		RepoOwner:      "yejune",
		RepoName:       "git-finfo",
		CurrentVersion: currentVersion,
		HTTPClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

// CheckForUpdate returns the latest release and whether it is newer than
// the running version.
func (u *Updater) CheckForUpdate() (*Release, bool, error) {
	release, err := u.latestRelease()
	if err != nil {
		return nil, false, err
	}
	return release, isNewerVersion(release.TagName, u.CurrentVersion), nil
}

// Update downloads the release asset for this platform and swaps it in
// place of the running executable.
func (u *Updater) Update(release *Release) error {
	assetName := u.assetName()
	var downloadURL string
	for _, asset := range release.Assets {
		if asset.Name == assetName {
			downloadURL = asset.BrowserDownloadURL
			break
		}
	}
	if downloadURL == "" {
		return fmt.Errorf("no binary found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	execPath, err := u.executablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	tempFile, err := u.downloadToTemp(downloadURL)
	if err != nil {
		return fmt.Errorf("failed to download update: %w", err)
	}
	defer os.Remove(tempFile)

	return replaceExecutable(execPath, tempFile)
}

func (u *Updater) latestRelease() (*Release, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", u.RepoOwner, u.RepoName)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "git-finfo-updater")

	resp, err := u.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no releases found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to parse release: %w", err)
	}
	return &release, nil
}

func (u *Updater) assetName() string {
	return fmt.Sprintf("git-finfo-%s-%s", runtime.GOOS, runtime.GOARCH)
}

func (u *Updater) executablePath() (string, error) {
	if u.Executable != "" {
		return u.Executable, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(execPath)
}

func (u *Updater) downloadToTemp(url string) (string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "git-finfo-updater")

	resp, err := u.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	tempFile, err := os.CreateTemp("", "git-finfo-update-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tempFile, resp.Body); err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return "", err
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}
	return tempFile.Name(), nil
}

// replaceExecutable swaps tempFile into execPath, keeping a backup until
// the rename succeeds.
func replaceExecutable(execPath, tempFile string) error {
	if err := os.Chmod(tempFile, 0755); err != nil {
		return err
	}

	backupPath := execPath + ".bak"
	os.Remove(backupPath)

	if err := os.Rename(execPath, backupPath); err != nil {
		return fmt.Errorf("failed to back up current executable: %w", err)
	}
	if err := os.Rename(tempFile, execPath); err != nil {
		os.Rename(backupPath, execPath)
		return fmt.Errorf("failed to install new executable: %w", err)
	}
	os.Remove(backupPath)
	return nil
}

// isNewerVersion reports whether tag is a newer semantic version than
// current. A "dev" build is always updatable.
func isNewerVersion(tag, current string) bool {
	current = strings.TrimPrefix(strings.TrimSpace(current), "v")
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "v")

	if current == "dev" || current == "" {
		return true
	}
	if tag == "" {
		return false
	}

	tagParts := strings.Split(tag, ".")
	curParts := strings.Split(current, ".")
	for i := 0; i < len(tagParts) || i < len(curParts); i++ {
		t, c := 0, 0
		if i < len(tagParts) {
			t, _ = strconv.Atoi(tagParts[i])
		}
		if i < len(curParts) {
			c, _ = strconv.Atoi(curParts[i])
		}
		if t != c {
			return t > c
		}
	}
	return false
}
