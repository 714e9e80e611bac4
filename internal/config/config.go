// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration values.
type Config struct {
	// UDP
	UDPListenAddr string // where the listener binds, all interfaces by default
	UDPBufferSize int    // bytes read per datagram
	UDPTargetAddr string // where the pose sender writes

	// MQTT (empty broker disables republishing)
	MQTTBroker           string
	MQTTClientIDListener string
	MQTTClientIDConsole  string

	// Topics
	TopicPose string

	// Web Server (0 disables)
	WebServerPort int

	// Timing
	SenderInterval time.Duration

	// Resizer
	ResizeTargetWidth int
	ResizeWorkers     int
	ResizeJPEGQuality int
}

// Package-level singleton, same pattern as the rest of the tools:
// InitGlobal sets it once, Get reads it under the read lock.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		UDPListenAddr:        ":12345",
		UDPBufferSize:        1024,
		UDPTargetAddr:        "127.0.0.1:12345",
		MQTTClientIDListener: "headpose-listener",
		MQTTClientIDConsole:  "headpose-console-subscriber",
		TopicPose:            "headpose/pose",
		SenderInterval:       time.Second / 60,
		ResizeTargetWidth:    1000,
		ResizeWorkers:        1,
		ResizeJPEGQuality:    90,
	}
}

// Load reads the configuration file on top of Default. An empty path
// yields the defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// UDP
	case "UDP_LISTEN_ADDR":
		c.UDPListenAddr = value
	case "UDP_BUFFER_SIZE":
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid UDP_BUFFER_SIZE %q: %w", value, err)
		}
		if size < 1 || size > 65535 {
			return fmt.Errorf("UDP_BUFFER_SIZE must be 1-65535, got %d", size)
		}
		c.UDPBufferSize = size
	case "UDP_TARGET_ADDR":
		c.UDPTargetAddr = value

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_LISTENER":
		c.MQTTClientIDListener = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value

	// Topics
	case "TOPIC_POSE":
		c.TopicPose = value

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		if port < 0 || port > 65535 {
			return fmt.Errorf("WEB_SERVER_PORT must be 0-65535, got %d", port)
		}
		c.WebServerPort = port

	// Timing
	case "SENDER_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SENDER_INTERVAL %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("SENDER_INTERVAL must be positive (milliseconds), got %d", interval)
		}
		c.SenderInterval = time.Duration(interval) * time.Millisecond

	// Resizer
	case "RESIZE_TARGET_WIDTH":
		width, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid RESIZE_TARGET_WIDTH %q: %w", value, err)
		}
		if width <= 0 {
			return fmt.Errorf("RESIZE_TARGET_WIDTH must be positive, got %d", width)
		}
		c.ResizeTargetWidth = width
	case "RESIZE_WORKERS":
		workers, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid RESIZE_WORKERS %q: %w", value, err)
		}
		if workers < 1 {
			return fmt.Errorf("RESIZE_WORKERS must be at least 1, got %d", workers)
		}
		c.ResizeWorkers = workers
	case "RESIZE_JPEG_QUALITY":
		quality, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid RESIZE_JPEG_QUALITY %q: %w", value, err)
		}
		if quality < 1 || quality > 100 {
			return fmt.Errorf("RESIZE_JPEG_QUALITY must be 1-100, got %d", quality)
		}
		c.ResizeJPEGQuality = quality

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.UDPListenAddr == "" {
		return fmt.Errorf("UDP_LISTEN_ADDR is required")
	}
	if c.UDPTargetAddr == "" {
		return fmt.Errorf("UDP_TARGET_ADDR is required")
	}
	if c.MQTTBroker != "" && c.TopicPose == "" {
		return fmt.Errorf("TOPIC_POSE is required when MQTT_BROKER is set")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Only the first call has any effect.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
