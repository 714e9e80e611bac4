// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Command resize scales every image in a folder to a fixed width,
// keeping the aspect ratio.
//
//	resize [-width 1000] [-workers 1] <input_folder> <output_folder>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/headpose_relay/internal/app"
	"github.com/relabs-tech/headpose_relay/internal/config"
	"github.com/relabs-tech/headpose_relay/internal/resize"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (defaults apply when empty)")
	width := flag.Int("width", 0, "output width in pixels, overrides RESIZE_TARGET_WIDTH")
	workers := flag.Int("workers", 0, "files processed at once, overrides RESIZE_WORKERS")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input_folder> <output_folder>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Get()

	opts := resize.Options{
		TargetWidth: cfg.ResizeTargetWidth,
		Workers:     cfg.ResizeWorkers,
		JPEGQuality: cfg.ResizeJPEGQuality,
		Logger:      log.Default(),
	}
	if *width != 0 {
		opts.TargetWidth = *width
	}
	if *workers != 0 {
		opts.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunResize(ctx, flag.Arg(0), flag.Arg(1), opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
