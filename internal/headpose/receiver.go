// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package headpose

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/relabs-tech/headpose_relay/internal/orientation"
)

const (
	DefaultAddress    = ":12345"
	DefaultBufferSize = 1024
)

// Handler is called from the receive loop for every valid reading.
// Handlers run on the loop goroutine and must not block for long.
type Handler func(Reading)

// ReceiverConfig contains configuration options for the receiver.
type ReceiverConfig struct {
	Address    string // defaults to DefaultAddress
	BufferSize int    // bytes read per datagram, defaults to DefaultBufferSize
	Logger     *log.Logger
	Handlers   []Handler
}

// Receiver listens for pose datagrams and remembers the latest valid one.
type Receiver struct {
	address  string
	bufSize  int
	logger   *log.Logger
	handlers []Handler

	connMu sync.RWMutex // protects conn
	conn   net.PacketConn
	ready  chan struct{}

	mu       sync.RWMutex
	latest   orientation.Pose
	havePose bool
}

// NewReceiver creates a receiver. Nothing is bound until Start.
func NewReceiver(cfg ReceiverConfig) *Receiver {
	r := &Receiver{
		address:  cfg.Address,
		bufSize:  cfg.BufferSize,
		logger:   cfg.Logger,
		handlers: cfg.Handlers,
		ready:    make(chan struct{}),
	}
	if r.address == "" {
		r.address = DefaultAddress
	}
	if r.bufSize <= 0 {
		r.bufSize = DefaultBufferSize
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Start binds the socket and serves datagrams until ctx is cancelled.
// It must be called at most once per Receiver.
// Malformed datagrams are logged and skipped. Only a bind failure or a
// socket read failure ends the loop with an error; cancellation returns
// nil.
func (r *Receiver) Start(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", r.address)
	if err != nil {
		return fmt.Errorf("failed to listen on UDP address %s: %w", r.address, err)
	}
	defer conn.Close()

	r.connMu.Lock()
	r.conn = conn
	r.connMu.Unlock()
	close(r.ready)

	// Closing the socket is what unblocks ReadFrom on cancellation.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	r.logger.Printf("listener: listening for UDP data on %s", conn.LocalAddr())

	buf := make([]byte, r.bufSize)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				r.logger.Println("listener: stopping")
				return nil
			}
			return fmt.Errorf("UDP read error: %w", err)
		}
		r.handlePacket(buf[:n], from)
	}
}

func (r *Receiver) handlePacket(data []byte, from net.Addr) {
	reading, err := Decode(data)
	if err != nil {
		r.logger.Printf("Invalid data: %q from %v, Error: %v", data, from, err)
		return
	}

	r.logger.Printf("Received %s", reading)

	r.mu.Lock()
	r.latest = reading.Pose
	r.havePose = true
	r.mu.Unlock()

	for _, h := range r.handlers {
		h(reading)
	}
}

// Latest returns the most recent valid pose and whether one has arrived.
func (r *Receiver) Latest() (orientation.Pose, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, r.havePose
}

// Ready is closed once the socket is bound.
func (r *Receiver) Ready() <-chan struct{} {
	return r.ready
}

// Addr returns the bound address, or nil before Start has bound.
func (r *Receiver) Addr() net.Addr {
	r.connMu.RLock()
	defer r.connMu.RUnlock()
	if r.conn == nil {
		return nil
	}
	return r.conn.LocalAddr()
}
