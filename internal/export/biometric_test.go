package export

import (
	"bytes"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/ink"
)

func biometricGroups(withPressure bool) []ink.PointGroup {
	s1 := ink.NewSample(20, 40, 1000)
	s2 := ink.NewSample(40, 40, 1050)
	if withPressure {
		s1.Pressure = 0.25
		s2.Pressure = 0.5
	}
	return []ink.PointGroup{
		{ID: "g1", Color: "#000000", Points: []ink.Sample{s1, s2}},
		{ID: "g2", Color: "#ff0000", Points: []ink.Sample{ink.NewSample(60, 60, 1100)}},
	}
}

func TestBiometricRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBiometric(&buf, biometricGroups(true), 2.0, "test-device"))

	d, err := ReadBiometric(&buf)
	require.NoError(t, err)

	assert.Equal(t, uint16(BiometricVersion), d.Version)
	assert.Equal(t, int64(1000), d.CaptureTime, "capture time is the first sample's timestamp")
	assert.Equal(t, "test-device", d.Device)
	assert.Equal(t, 2.0, d.PixelsPerMM)

	require.Len(t, d.Groups, 2)
	assert.Equal(t, "#000000", d.Groups[0].Color)
	assert.Equal(t, "#ff0000", d.Groups[1].Color)
	require.Len(t, d.Groups[0].Points, 2)
	require.Len(t, d.Groups[1].Points, 1)

	// Every record carries one int32 per set mask bit.
	recordLen := bits.OnesCount32(d.ChannelMask)
	for _, g := range d.Groups {
		for _, rec := range g.Points {
			assert.Len(t, rec, recordLen)
		}
	}
}

func TestBiometricPositionAndTimeScaling(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBiometric(&buf, biometricGroups(false), 2.0, "dev"))

	d, err := ReadBiometric(&buf)
	require.NoError(t, err)

	// Mask is X|Y|Time only: record layout [x, y, t].
	require.Equal(t, ChannelX|ChannelY|ChannelTime, d.ChannelMask)
	first := d.Groups[0].Points[0]
	// 20px at 2 px/mm = 10mm, scaled by 1000.
	assert.Equal(t, int32(10000), first[0])
	assert.Equal(t, int32(20000), first[1])
	assert.Equal(t, int32(0), first[2], "time is relative to capture start")

	second := d.Groups[0].Points[1]
	assert.Equal(t, int32(50), second[2], "millisecond offsets, unscaled")
}

func TestBiometricChannelMask(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBiometric(&buf, biometricGroups(true), 2.0, "dev"))
	d, err := ReadBiometric(&buf)
	require.NoError(t, err)

	assert.NotZero(t, d.ChannelMask&ChannelPressure, "pressure present on some samples is included")
	assert.Zero(t, d.ChannelMask&ChannelTiltX, "channels never populated stay excluded")
}

func TestBiometricChannelHeaderTriples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBiometric(&buf, biometricGroups(false), 2.0, "dev"))
	d, err := ReadBiometric(&buf)
	require.NoError(t, err)

	require.Len(t, d.Channels, 3)
	for _, ch := range d.Channels {
		if ch.Channel == ChannelTime {
			assert.Equal(t, int32(1), ch.Scale)
		} else {
			assert.Equal(t, int32(DefaultChannelScale), ch.Scale)
		}
		assert.LessOrEqual(t, ch.Min, ch.Max)
	}
}

func TestBiometricRejectsBadMagic(t *testing.T) {
	_, err := ReadBiometric(bytes.NewBufferString("XXXX not a biometric stream"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a biometric stream")
}

func TestBiometricRejectsBadDensity(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBiometric(&buf, biometricGroups(false), 0, "dev")
	require.Error(t, err)
}

func TestBiometricEmptyDrawing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBiometric(&buf, nil, 2.0, "dev"))
	d, err := ReadBiometric(&buf)
	require.NoError(t, err)
	assert.Empty(t, d.Groups)
	assert.Equal(t, int64(0), d.CaptureTime)
}
