// Package preview renders downscaled previews of removal results so a
// region or mask setup can be checked before a long batch run.
package preview

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/inkwash/inkwash/internal/fileutil"

	// Registered so Dimensions can sniff formats the stdlib does not
	// decode on its own.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DefaultMaxSize caps the longest side of a preview.
const DefaultMaxSize = 800

const jpegQuality = 95

// Fit downscales img so its longest side is at most maxSize. Images that
// already fit are returned untouched; previews are never upscaled.
func Fit(img image.Image, maxSize int) image.Image {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	b := img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return img
	}
	return imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
}

// Save encodes the preview to path, picking the format from the
// extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("save preview %s: %w", path, err)
	}
	return nil
}

// OutputPath places the preview next to the input with a _preview suffix.
// Video sources get a .jpg preview since a single frame is rendered.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ext)
	if !fileutil.IsImage(inputPath) {
		ext = ".jpg"
	}
	return filepath.Join(filepath.Dir(inputPath), name+"_preview"+ext)
}

// Dimensions reads the pixel size of an image file without decoding the
// whole image.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
