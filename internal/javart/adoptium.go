package javart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mholt/archiver/v3"
)

// AdoptiumDownloader is a supplemental JVM acquisition path, used when a
// distribution isn't available from the Mojang meta-manifest (or the
// Mojang policy is skipped entirely). It is not one of the mandatory JVM
// policies — Static/System/Mojang and their compositions cover that —
// but gives an install a fallback runtime source.
type AdoptiumDownloader struct {
	client *retryablehttp.Client
}

// NewAdoptiumDownloader builds an AdoptiumDownloader over a dedicated
// retryable client (Adoptium's API is not part of the download engine's
// Cache-mode contract, so it does not share internal/download.Manager).
func NewAdoptiumDownloader() *AdoptiumDownloader {
	client := retryablehttp.NewClient()
	client.Logger = nil
	return &AdoptiumDownloader{client: client}
}

// DownloadRuntime fetches and extracts the requested Java major version
// from Adoptium into destBaseDir/<version>, returning the path to its
// java executable.
func (d *AdoptiumDownloader) DownloadRuntime(ctx context.Context, major int, destBaseDir string) (string, error) {
	downloadURL, filename, err := d.resolveAdoptiumURL(ctx, major)
	if err != nil {
		return "", fmt.Errorf("javart: resolving adoptium release for java %d: %w", major, err)
	}

	versionDir := filepath.Join(destBaseDir, fmt.Sprintf("%d", major))
	if err := os.MkdirAll(versionDir, 0o755); err != nil {
		return "", fmt.Errorf("javart: creating %s: %w", versionDir, err)
	}

	archivePath := filepath.Join(versionDir, filename)
	if err := d.downloadFile(ctx, downloadURL, archivePath); err != nil {
		return "", fmt.Errorf("javart: downloading %s: %w", downloadURL, err)
	}
	defer os.Remove(archivePath)

	if err := extractStrippingTopLevel(archivePath, versionDir); err != nil {
		return "", fmt.Errorf("javart: extracting %s: %w", archivePath, err)
	}

	return FindJavaExecutable(versionDir)
}

func (d *AdoptiumDownloader) resolveAdoptiumURL(ctx context.Context, major int) (url, filename string, err error) {
	osName := runtime.GOOS
	if osName == "darwin" {
		osName = "mac"
	}
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x64"
	case "arm64":
		arch = "aarch64"
	}

	reqURL := fmt.Sprintf(
		"https://api.adoptium.net/v3/assets/feature_releases/%d/ga?architecture=%s&heap_size=normal&image_type=jre&jvm_impl=hotspot&os=%s&page=0&page_size=1&project=jdk&sort_method=DEFAULT&sort_order=DESC&vendor=eclipse",
		major, arch, osName)

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", "", fmt.Errorf("adoptium api returned status %d", resp.StatusCode)
	}

	var releases []adoptiumRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return "", "", err
	}
	if len(releases) == 0 || len(releases[0].Binaries) == 0 {
		return "", "", fmt.Errorf("no adoptium release found for java %d on %s/%s", major, osName, arch)
	}

	pkg := releases[0].Binaries[0].Package
	return pkg.Link, pkg.Name, nil
}

type adoptiumRelease struct {
	Binaries []struct {
		Package struct {
			Link string `json:"link"`
			Name string `json:"name"`
		} `json:"package"`
	} `json:"binaries"`
}

func (d *AdoptiumDownloader) downloadFile(ctx context.Context, url, dest string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, resp.Body)
	return err
}

// extractStrippingTopLevel unpacks src into dest and drops the archive's
// single top-level directory (Adoptium always wraps releases in one,
// e.g. "jdk-21.0.4+7-jre/"), delegating format handling to archiver so
// gzip/xz/zip are all supported without a format-specific code path here.
func extractStrippingTopLevel(src, dest string) error {
	scratch, err := os.MkdirTemp(dest, "extract-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	if err := archiver.Unarchive(src, scratch); err != nil {
		return err
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		return err
	}
	root := scratch
	if len(entries) == 1 && entries[0].IsDir() {
		root = filepath.Join(scratch, entries[0].Name())
	}

	return moveTree(root, dest)
}

func moveTree(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dest, e.Name())
		if err := os.Rename(from, to); err != nil {
			return fmt.Errorf("moving %s to %s: %w", from, to, err)
		}
	}
	return nil
}

// FindJavaExecutable locates bin/java(.exe) under an extracted runtime tree.
func FindJavaExecutable(dir string) (string, error) {
	binName := "java"
	if runtime.GOOS == "windows" {
		binName = "java.exe"
	}

	var found string
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || found != "" {
			return nil
		}
		if info.Name() == binName && filepath.Base(filepath.Dir(path)) == "bin" {
			found = path
			return filepath.SkipDir
		}
		return nil
	})
	if found == "" {
		return "", fmt.Errorf("javart: no java executable found under %s", dir)
	}
	return found, nil
}
