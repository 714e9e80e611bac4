// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package resize

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Options tune a batch run. Zero values take the defaults.
type Options struct {
	TargetWidth int // DefaultTargetWidth when 0
	Workers     int // files processed at once; 1 (sequential) when 0
	JPEGQuality int // 90 when 0
	Logger      *log.Logger
}

func (o Options) withDefaults() Options {
	if o.TargetWidth == 0 {
		o.TargetWidth = DefaultTargetWidth
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = 90
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Summary counts what a batch run did.
type Summary struct {
	Resized int // written to the output folder
	Failed  int // supported extension but could not be processed
	Skipped int // not a regular file or not an image extension
}

// Batch resizes every supported image in inputDir into outputDir under
// the same file name. A file that cannot be processed is logged and
// skipped. Only failing to create outputDir or to list inputDir is
// returned as an error, plus ctx's error when the run was cut short.
func Batch(ctx context.Context, inputDir, outputDir string, opts Options) (Summary, error) {
	opts = opts.withDefaults()
	if opts.TargetWidth < 0 {
		return Summary{}, fmt.Errorf("%w: %d", ErrBadTarget, opts.TargetWidth)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output folder: %w", err)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("read input folder: %w", err)
	}

	var (
		mu  sync.Mutex
		sum Summary
		g   errgroup.Group
	)
	g.SetLimit(opts.Workers)

	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}

		name := e.Name()
		inPath := filepath.Join(inputDir, name)
		if !Supported(name) || !isRegular(inPath, e) {
			mu.Lock()
			sum.Skipped++
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			w, h, err := File(inPath, filepath.Join(outputDir, name), opts.TargetWidth, opts.JPEGQuality)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				sum.Failed++
				opts.Logger.Printf("cannot process %s: %v", name, err)
				return nil
			}
			sum.Resized++
			opts.Logger.Printf("Resized '%s' -> %dx%d", name, w, h)
			return nil
		})
	}
	_ = g.Wait() // per-file errors are counted, never returned

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	return sum, nil
}

// isRegular follows symlinks, the same way opening the file would.
func isRegular(path string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// File resizes one image from inPath to outPath and returns the output
// dimensions. The output format follows outPath's extension. The image is
// written to a temporary file next to outPath and renamed into place, so
// a failure never leaves a partial output behind, even when outPath is
// inPath.
func File(inPath, outPath string, targetWidth, jpegQuality int) (int, int, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return 0, 0, err
	}
	src, _, err := decode(in)
	in.Close()
	if err != nil {
		return 0, 0, err
	}

	dst, err := Image(src, targetWidth)
	if err != nil {
		return 0, 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".resize-*")
	if err != nil {
		return 0, 0, fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return 0, 0, fmt.Errorf("chmod output: %w", err)
	}

	if err := encode(tmp, outPath, dst, jpegQuality); err != nil {
		tmp.Close()
		return 0, 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, 0, fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return 0, 0, fmt.Errorf("move output into place: %w", err)
	}

	b := dst.Bounds()
	return b.Dx(), b.Dy(), nil
}
