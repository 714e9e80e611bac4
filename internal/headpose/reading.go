// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package headpose receives head orientation datagrams sent by the phone
// app over UDP. One datagram carries one JSON object:
//
//	{"yaw":12.34,"pitch":-5.00,"roll":0.25}
//
// Angles are degrees. Any sender can write to the port; nothing is sent
// back.
package headpose

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/relabs-tech/headpose_relay/internal/orientation"
)

var (
	ErrNotUTF8      = errors.New("payload is not valid UTF-8")
	ErrMissingField = errors.New("missing field")
	ErrNotNumber    = errors.New("field is not a number")
	ErrTrailingData = errors.New("trailing data after JSON object")
)

// Reading is one decoded datagram. Besides the parsed pose it keeps the
// numbers exactly as they were written on the wire so they can be logged
// unchanged.
type Reading struct {
	Pose orientation.Pose

	yaw, pitch, roll json.Number
}

// String formats the reading with the literal values from the datagram.
func (r Reading) String() string {
	return fmt.Sprintf("Yaw: %s, Pitch: %s, Roll: %s", r.yaw, r.pitch, r.roll)
}

// Decode parses a datagram payload into a Reading. Keys other than yaw,
// pitch and roll are ignored.
func Decode(data []byte) (Reading, error) {
	if !utf8.Valid(data) {
		return Reading{}, ErrNotUTF8
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var msg map[string]any
	if err := dec.Decode(&msg); err != nil {
		return Reading{}, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Reading{}, ErrTrailingData
	}

	var (
		r   Reading
		err error
	)
	if r.yaw, r.Pose.Yaw, err = number(msg, "yaw"); err != nil {
		return Reading{}, err
	}
	if r.pitch, r.Pose.Pitch, err = number(msg, "pitch"); err != nil {
		return Reading{}, err
	}
	if r.roll, r.Pose.Roll, err = number(msg, "roll"); err != nil {
		return Reading{}, err
	}
	return r, nil
}

func number(msg map[string]any, key string) (json.Number, float64, error) {
	v, ok := msg[key]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	n, ok := v.(json.Number)
	if !ok {
		return "", 0, fmt.Errorf("%w: %q holds %T", ErrNotNumber, key, v)
	}
	f, err := n.Float64()
	if err != nil {
		// out of float64 range, e.g. 1e999
		return "", 0, fmt.Errorf("%w: %q: %v", ErrNotNumber, key, err)
	}
	return n, f, nil
}

// Encode renders a pose the way the phone app sends it, two decimals per
// angle.
func Encode(p orientation.Pose) []byte {
	return fmt.Appendf(nil, `{"yaw":%.2f,"pitch":%.2f,"roll":%.2f}`, p.Yaw, p.Pitch, p.Roll)
}
