package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/headpose_relay/internal/headpose"
	"github.com/relabs-tech/headpose_relay/internal/orientation"
)

func mustDecode(t *testing.T, payload string) headpose.Reading {
	t.Helper()
	r, err := headpose.Decode([]byte(payload))
	require.NoError(t, err)
	return r
}

func TestPosePublisherRepublishesRetained(t *testing.T) {
	client := &fakeClient{}
	pub := &posePublisher{client: client, topic: "headpose/pose"}

	pub.Handle(mustDecode(t, `{"yaw":1.0,"pitch":2.0,"roll":3.0}`))

	require.Len(t, client.published, 1)
	msg := client.published[0]
	assert.Equal(t, "headpose/pose", msg.topic)
	assert.Equal(t, byte(0), msg.qos)
	assert.True(t, msg.retained)

	var p orientation.Pose
	require.NoError(t, json.Unmarshal(msg.payload, &p))
	assert.Equal(t, orientation.Pose{Roll: 3, Pitch: 2, Yaw: 1}, p)

	pub.Close()
	assert.True(t, client.disconnected)
}

func TestPosePublisherSurvivesPublishError(t *testing.T) {
	client := &fakeClient{publishErr: errors.New("not connected")}
	pub := &posePublisher{client: client, topic: "headpose/pose"}

	pub.Handle(mustDecode(t, `{"yaw":1,"pitch":2,"roll":3}`))
	pub.Handle(mustDecode(t, `{"yaw":4,"pitch":5,"roll":6}`))
	assert.Len(t, client.published, 2)
}

func TestPrintPose(t *testing.T) {
	var out bytes.Buffer
	handler := printPose(&out)

	handler(nil, fakeMessage{payload: []byte(`{"roll":3,"pitch":-2.5,"yaw":120.126}`)})
	handler(nil, fakeMessage{payload: []byte(`garbage`)})

	assert.Equal(t, "[POSE]  ROLL=  3.00  PITCH= -2.50  YAW=120.13\n", out.String())
}
