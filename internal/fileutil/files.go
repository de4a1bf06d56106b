// Package fileutil classifies media files and lays out the output tree.
package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ProcessedDirName is the sibling directory outputs are written to.
const ProcessedDirName = "processed"

// DefaultSuffix is appended to output file names.
const DefaultSuffix = "_nowm"

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
}

var videoExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
}

// IsImage reports whether the path has a supported image extension.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsVideo reports whether the path has a supported video extension.
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanDirectory walks dir recursively and returns the supported image and
// video files found, in walk order.
func ScanDirectory(dir string) (images, videos []string, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case IsImage(path):
			images = append(images, path)
		case IsVideo(path):
			videos = append(videos, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return images, videos, nil
}

// CollectInputs expands the given paths into image and video file lists.
// Directories are scanned recursively; unsupported files are skipped.
func CollectInputs(paths []string) (images, videos []string, err error) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			imgs, vids, err := ScanDirectory(p)
			if err != nil {
				return nil, nil, err
			}
			images = append(images, imgs...)
			videos = append(videos, vids...)
			continue
		}
		switch {
		case IsImage(p):
			images = append(images, p)
		case IsVideo(p):
			videos = append(videos, p)
		}
	}
	return images, videos, nil
}

// OutputPath builds the output path for an input file. Unless outDir is
// set, outputs go to a "processed" directory next to the input, with the
// suffix inserted before the extension. The directory is created.
func OutputPath(inputPath, outDir, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	dir := outDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(inputPath), ProcessedDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", dir, err)
	}

	ext := filepath.Ext(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(dir, name+suffix+ext), nil
}
