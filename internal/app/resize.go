package app

import (
	"context"
	"log"

	"github.com/relabs-tech/headpose_relay/internal/resize"
)

// RunResize scales every image in inputDir into outputDir.
func RunResize(ctx context.Context, inputDir, outputDir string, opts resize.Options) error {
	log.Printf("resize: %s -> %s (width %d, %d workers)", inputDir, outputDir, opts.TargetWidth, opts.Workers)

	sum, err := resize.Batch(ctx, inputDir, outputDir, opts)
	log.Printf("resize: %d resized, %d failed, %d skipped", sum.Resized, sum.Failed, sum.Skipped)
	return err
}
