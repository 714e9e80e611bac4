package headpose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/headpose_relay/internal/orientation"
)

func TestDecodeValid(t *testing.T) {
	r, err := Decode([]byte(`{"yaw":1.0,"pitch":2.0,"roll":3.0}`))
	require.NoError(t, err)
	assert.Equal(t, orientation.Pose{Roll: 3, Pitch: 2, Yaw: 1}, r.Pose)
	assert.Equal(t, "Yaw: 1.0, Pitch: 2.0, Roll: 3.0", r.String())
}

func TestDecodeKeepsLiteralValues(t *testing.T) {
	tests := []struct {
		payload string
		want    string
	}{
		{`{"yaw":-12.50,"pitch":0,"roll":1e2}`, "Yaw: -12.50, Pitch: 0, Roll: 1e2"},
		{`{"roll":3,"pitch":2,"yaw":1,"extra":"ignored"}`, "Yaw: 1, Pitch: 2, Roll: 3"},
		{" {\"yaw\":0.1,\"pitch\":0.2,\"roll\":0.3}\n", "Yaw: 0.1, Pitch: 0.2, Roll: 0.3"},
	}
	for _, tt := range tests {
		r, err := Decode([]byte(tt.payload))
		require.NoError(t, err, tt.payload)
		assert.Equal(t, tt.want, r.String())
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		is      error
	}{
		{"not utf8", []byte{'{', 0xff, 0xfe, '}'}, ErrNotUTF8},
		{"not json", []byte("not json"), nil},
		{"empty", []byte{}, nil},
		{"array", []byte(`[1,2,3]`), nil},
		{"null", []byte(`null`), ErrMissingField},
		{"missing roll", []byte(`{"yaw":1,"pitch":2}`), ErrMissingField},
		{"missing yaw", []byte(`{"pitch":2,"roll":3}`), ErrMissingField},
		{"string value", []byte(`{"yaw":"1","pitch":2,"roll":3}`), ErrNotNumber},
		{"null value", []byte(`{"yaw":1,"pitch":null,"roll":3}`), ErrNotNumber},
		{"bool value", []byte(`{"yaw":1,"pitch":2,"roll":true}`), ErrNotNumber},
		{"out of range", []byte(`{"yaw":1e999,"pitch":2,"roll":3}`), ErrNotNumber},
		{"two objects", []byte(`{"yaw":1,"pitch":2,"roll":3}{}`), ErrTrailingData},
		{"trailing garbage", []byte(`{"yaw":1,"pitch":2,"roll":3} x`), ErrTrailingData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.payload)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestDecodeMissingFieldNamesKey(t *testing.T) {
	_, err := Decode([]byte(`{"yaw":1,"roll":3}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pitch"`)
}

func TestEncodeMatchesPhoneFormat(t *testing.T) {
	got := Encode(orientation.Pose{Roll: -3.14159, Pitch: 2, Yaw: 179.999})
	assert.Equal(t, `{"yaw":180.00,"pitch":2.00,"roll":-3.14}`, string(got))

	r, err := Decode(got)
	require.NoError(t, err)
	assert.InDelta(t, 180.0, r.Pose.Yaw, 1e-9)
	assert.InDelta(t, -3.14, r.Pose.Roll, 1e-9)
}
