package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/headpose_relay/internal/app"
	"github.com/relabs-tech/headpose_relay/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (defaults apply when empty)")
	target := flag.String("target", "", "listener address, overrides UDP_TARGET_ADDR")
	interval := flag.Duration("interval", 0, "time between poses, overrides SENDER_INTERVAL")
	flag.Parse()

	log.Println("starting headpose sender (mock head sweep → UDP)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := *config.Get()
	if *target != "" {
		cfg.UDPTargetAddr = *target
	}
	if *interval > 0 {
		cfg.SenderInterval = *interval
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunSender(ctx, &cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
