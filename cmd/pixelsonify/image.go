//go:build !js
// +build !js

package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"
	_ "golang.org/x/image/webp"

	"github.com/simukka/pixel-sonify/sonify"
)

var imageExts = []string{"png", "jpg", "jpeg", "gif", "webp"}

// choosePath returns the image path either from the command-line args
// or from an interactive file dialog.
func choosePath(cwd string, args []string) (string, error) {
	if len(args) > 0 {
		absPath, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("cannot get absolute path: %w", err)
		}
		if err := validatePath(absPath); err != nil {
			return "", fmt.Errorf("passed argument is not a valid image: %w", err)
		}
		return absPath, nil
	}

	path, err := dialog.
		File().
		Title("Open image").
		Filter("Images (*.png, *.jpg, *.gif, *.webp)", imageExts...).
		SetStartDir(cwd).
		Load()
	if err != nil {
		// Caller checks for dialog.ErrCancelled.
		return "", err
	}
	if path == "" {
		return "", dialog.ErrCancelled
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot get absolute path: %w", err)
	}
	if err := validatePath(absPath); err != nil {
		return "", fmt.Errorf("dialog selection invalid: %w", err)
	}
	return absPath, nil
}

// validatePath checks the extension and that the file exists.
func validatePath(p string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(p)), ".")
	known := false
	for _, e := range imageExts {
		if ext == e {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unsupported image extension %q", ext)
	}
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("cannot stat file: %w", err)
	}
	return nil
}

// decodeImage reads and downsamples the image at path.
func decodeImage(path string) (*sonify.SampleBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sonify.ErrDecode, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sonify.ErrDecode, filepath.Base(path), err)
	}
	logger.Printf("Decoded %s image %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return sonify.Downsample(img), nil
}

// fileLoader loads images from disk for the playback controller.
type fileLoader struct{}

func (fileLoader) Load(src string, done func(*sonify.SampleBuffer, error)) {
	done(decodeImage(src))
}
