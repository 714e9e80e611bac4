// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/relabs-tech/headpose_relay/internal/config"
	"github.com/relabs-tech/headpose_relay/internal/headpose"
)

// RunListener receives head poses over UDP until ctx is cancelled.
// Depending on cfg it also republishes them to MQTT and serves them over
// HTTP and websocket.
func RunListener(ctx context.Context, cfg *config.Config) error {
	var handlers []headpose.Handler

	if cfg.MQTTBroker != "" {
		client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDListener)
		if err != nil {
			return fmt.Errorf("MQTT connect error: %w", err)
		}
		log.Printf("listener: connected to MQTT broker at %s, republishing to %s", cfg.MQTTBroker, cfg.TopicPose)

		pub := &posePublisher{client: client, topic: cfg.TopicPose}
		defer pub.Close()
		handlers = append(handlers, pub.Handle)
	}

	if cfg.WebServerPort != 0 {
		hub := newPoseHub()
		handlers = append(handlers, func(r headpose.Reading) { hub.publish(r.Pose) })

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.WebServerPort),
			Handler:           newWebMux(hub),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Printf("web: server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("web: server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("web: shutdown error: %v", err)
			}
		}()
	}

	rcv := headpose.NewReceiver(headpose.ReceiverConfig{
		Address:    cfg.UDPListenAddr,
		BufferSize: cfg.UDPBufferSize,
		Handlers:   handlers,
	})
	return rcv.Start(ctx)
}
