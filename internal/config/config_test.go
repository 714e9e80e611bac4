package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "headpose_config.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":12345", cfg.UDPListenAddr)
	assert.Equal(t, 1024, cfg.UDPBufferSize)
	assert.Equal(t, 1000, cfg.ResizeTargetWidth)
	assert.Equal(t, 1, cfg.ResizeWorkers)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
# listener
UDP_LISTEN_ADDR = 0.0.0.0:45678
UDP_BUFFER_SIZE=2048

MQTT_BROKER=tcp://localhost:1883
TOPIC_POSE=inertial/headpose
WEB_SERVER_PORT=8080
SENDER_INTERVAL=100
RESIZE_TARGET_WIDTH=640
RESIZE_WORKERS=4
RESIZE_JPEG_QUALITY=75
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:45678", cfg.UDPListenAddr)
	assert.Equal(t, 2048, cfg.UDPBufferSize)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	assert.Equal(t, "inertial/headpose", cfg.TopicPose)
	assert.Equal(t, 8080, cfg.WebServerPort)
	assert.Equal(t, 100*time.Millisecond, cfg.SenderInterval)
	assert.Equal(t, 640, cfg.ResizeTargetWidth)
	assert.Equal(t, 4, cfg.ResizeWorkers)
	assert.Equal(t, 75, cfg.ResizeJPEGQuality)

	// untouched keys keep their defaults
	assert.Equal(t, "127.0.0.1:12345", cfg.UDPTargetAddr)
	assert.Equal(t, "headpose-listener", cfg.MQTTClientIDListener)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing equals", "UDP_LISTEN_ADDR\n", "invalid config line 1"},
		{"unknown key", "NOPE=1\n", "unknown config key"},
		{"bad int", "UDP_BUFFER_SIZE=big\n", "invalid UDP_BUFFER_SIZE"},
		{"buffer out of range", "UDP_BUFFER_SIZE=0\n", "UDP_BUFFER_SIZE must be 1-65535"},
		{"bad width", "RESIZE_TARGET_WIDTH=-5\n", "RESIZE_TARGET_WIDTH must be positive"},
		{"bad workers", "RESIZE_WORKERS=0\n", "RESIZE_WORKERS must be at least 1"},
		{"bad quality", "RESIZE_JPEG_QUALITY=101\n", "RESIZE_JPEG_QUALITY must be 1-100"},
		{"bad port", "WEB_SERVER_PORT=70000\n", "WEB_SERVER_PORT must be 0-65535"},
		{"bad interval", "SENDER_INTERVAL=0\n", "SENDER_INTERVAL must be positive"},
		{"empty listen addr", "UDP_LISTEN_ADDR=\n", "UDP_LISTEN_ADDR is required"},
		{"broker without topic", "MQTT_BROKER=tcp://x:1883\nTOPIC_POSE=\n", "TOPIC_POSE is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
