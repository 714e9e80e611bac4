// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package resize scales every image in a folder to a fixed width,
// keeping the aspect ratio.
package resize

import (
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// DefaultTargetWidth is the output width when none is configured.
const DefaultTargetWidth = 1000

var (
	ErrZeroWidth = errors.New("image has zero width")
	ErrBadTarget = errors.New("target width must be positive")
)

var supportedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tiff": true,
}

// Supported reports whether name carries an image extension the batch
// job picks up. The match is case-insensitive.
func Supported(name string) bool {
	return supportedExt[strings.ToLower(filepath.Ext(name))]
}

// TargetSize returns the output dimensions for an image of w×h scaled to
// targetWidth: height = round(h * targetWidth / w), never below 1.
func TargetSize(w, h, targetWidth int) (int, int, error) {
	if targetWidth <= 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrBadTarget, targetWidth)
	}
	if w <= 0 {
		return 0, 0, ErrZeroWidth
	}
	newHeight := int(math.Round(float64(h) * float64(targetWidth) / float64(w)))
	if newHeight < 1 {
		newHeight = 1
	}
	return targetWidth, newHeight, nil
}

// Image resamples src to targetWidth with a Catmull-Rom kernel.
func Image(src image.Image, targetWidth int) (image.Image, error) {
	b := src.Bounds()
	w, h, err := TargetSize(b.Dx(), b.Dy(), targetWidth)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, src, b, draw.Src, nil)
	return dst, nil
}
