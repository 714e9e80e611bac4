package app

import (
	"context"
	"log"
	"time"

	"github.com/relabs-tech/headpose_relay/internal/config"
	"github.com/relabs-tech/headpose_relay/internal/headpose"
	"github.com/relabs-tech/headpose_relay/internal/orientation"
)

// RunSender plays a mock head sweep into the listener at
// cfg.SenderInterval, standing in for the phone app.
func RunSender(ctx context.Context, cfg *config.Config) error {
	log.Printf("sender: sending mock poses to %s every %v", cfg.UDPTargetAddr, cfg.SenderInterval)
	return runSender(ctx, cfg.UDPTargetAddr, cfg.SenderInterval, orientation.NewMockSource())
}

func runSender(ctx context.Context, target string, interval time.Duration, src orientation.Source) error {
	s, err := headpose.NewSender(target)
	if err != nil {
		return err
	}
	defer s.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var sent int
	for {
		select {
		case <-ctx.Done():
			log.Printf("sender: stopping after %d poses", sent)
			return nil
		case <-ticker.C:
		}

		pose, err := src.Next()
		if err != nil {
			log.Printf("sender: error from pose source: %v", err)
			continue
		}
		// Nobody listening shows up as ECONNREFUSED on the next write.
		if err := s.Send(pose); err != nil {
			log.Printf("sender: %v", err)
			continue
		}
		sent++
	}
}
