package export

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"InkBoard/internal/ink"
)

// Biometric export: a fixed binary layout for interchange with external
// signature-verification systems. Everything is big endian.
//
//	magic           [4]byte  "ISIG"
//	version         uint16   currently 1
//	captureTime     int64    ms since epoch, time of the first sample
//	device          uint16 length + UTF-8 bytes
//	pixelsPerMM     float64  measured display density
//	channelMask     uint32   which channels each sample record carries
//	channelCount    uint16   followed by per-channel scale/min/max triples
//	  channel       uint32   single mask bit
//	  scale         int32
//	  min, max      int32    scaled
//	groupCount      uint32
//	  color         uint16 length + UTF-8 bytes
//	  pointCount    uint32
//	    one int32 per set mask bit, in ascending bit order
//
// Positions are converted from pixels to millimeters before scaling; time is
// stored as the millisecond offset from captureTime so it fits an int32.
// External consumers depend on this layout; change it only with a version
// bump.

var biometricMagic = [4]byte{'I', 'S', 'I', 'G'}

const BiometricVersion = 1

// DefaultChannelScale is the fixed integer scale factor applied to every
// exported channel value.
const DefaultChannelScale = 1000

// Channel bits of the inclusion mask, ascending record order.
const (
	ChannelX uint32 = 1 << iota
	ChannelY
	ChannelTime
	ChannelPressure
	ChannelTiltX
	ChannelTiltY
	ChannelRotation
	ChannelAltitude
	ChannelAzimuth
)

var channelOrder = []uint32{
	ChannelX, ChannelY, ChannelTime, ChannelPressure,
	ChannelTiltX, ChannelTiltY, ChannelRotation, ChannelAltitude, ChannelAzimuth,
}

// ChannelInfo is one scale/min/max triple from the header.
type ChannelInfo struct {
	Channel uint32
	Scale   int32
	Min     int32
	Max     int32
}

// BiometricData is the decoded form of a biometric stream, used for
// round-trip verification.
type BiometricData struct {
	Version     uint16
	CaptureTime int64
	Device      string
	PixelsPerMM float64
	ChannelMask uint32
	Channels    []ChannelInfo
	Groups      []BiometricGroup
}

// BiometricGroup is one gesture's decoded sample records.
type BiometricGroup struct {
	Color  string
	Points [][]int32
}

// WriteBiometric serializes the drawing as a normalized biometric sample
// stream. pixelsPerMM converts surface pixels to physical millimeters;
// device names the capture device for the header. Optional channels are
// included only when at least one sample in the drawing populates them.
func WriteBiometric(w io.Writer, groups []ink.PointGroup, pixelsPerMM float64, device string) error {
	if pixelsPerMM <= 0 {
		return errors.New("pixelsPerMM must be positive")
	}

	captureTime := firstSampleTime(groups)
	mask := channelMask(groups)

	records := make([][]int32, 0)
	groupIndex := make([]int, 0, len(groups)) // record count per group prefix
	for _, g := range groups {
		for _, s := range g.Points {
			records = append(records, encodeSample(s, mask, captureTime, pixelsPerMM))
		}
		groupIndex = append(groupIndex, len(records))
	}

	buf := &bytes.Buffer{}
	buf.Write(biometricMagic[:])
	binary.Write(buf, binary.BigEndian, uint16(BiometricVersion))
	binary.Write(buf, binary.BigEndian, captureTime)
	writeString(buf, device)
	binary.Write(buf, binary.BigEndian, pixelsPerMM)
	binary.Write(buf, binary.BigEndian, mask)

	channels := channelRanges(mask, records)
	binary.Write(buf, binary.BigEndian, uint16(len(channels)))
	for _, ch := range channels {
		binary.Write(buf, binary.BigEndian, ch.Channel)
		binary.Write(buf, binary.BigEndian, ch.Scale)
		binary.Write(buf, binary.BigEndian, ch.Min)
		binary.Write(buf, binary.BigEndian, ch.Max)
	}

	binary.Write(buf, binary.BigEndian, uint32(len(groups)))
	start := 0
	for i, g := range groups {
		writeString(buf, g.Color)
		end := groupIndex[i]
		binary.Write(buf, binary.BigEndian, uint32(end-start))
		for _, rec := range records[start:end] {
			for _, v := range rec {
				binary.Write(buf, binary.BigEndian, v)
			}
		}
		start = end
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// ReadBiometric decodes a stream written by WriteBiometric.
func ReadBiometric(r io.Reader) (*BiometricData, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if magic != biometricMagic {
		return nil, fmt.Errorf("not a biometric stream (magic %q)", magic[:])
	}

	d := &BiometricData{}
	if err := binary.Read(r, binary.BigEndian, &d.Version); err != nil {
		return nil, err
	}
	if d.Version != BiometricVersion {
		return nil, fmt.Errorf("unsupported biometric version %d", d.Version)
	}
	if err := binary.Read(r, binary.BigEndian, &d.CaptureTime); err != nil {
		return nil, err
	}
	var err error
	if d.Device, err = readString(r); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &d.PixelsPerMM); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &d.ChannelMask); err != nil {
		return nil, err
	}

	var channelCount uint16
	if err := binary.Read(r, binary.BigEndian, &channelCount); err != nil {
		return nil, err
	}
	d.Channels = make([]ChannelInfo, channelCount)
	for i := range d.Channels {
		ch := &d.Channels[i]
		if err := binary.Read(r, binary.BigEndian, &ch.Channel); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &ch.Scale); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &ch.Min); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &ch.Max); err != nil {
			return nil, err
		}
	}

	recordLen := 0
	for _, bit := range channelOrder {
		if d.ChannelMask&bit != 0 {
			recordLen++
		}
	}

	var groupCount uint32
	if err := binary.Read(r, binary.BigEndian, &groupCount); err != nil {
		return nil, err
	}
	d.Groups = make([]BiometricGroup, groupCount)
	for i := range d.Groups {
		g := &d.Groups[i]
		if g.Color, err = readString(r); err != nil {
			return nil, err
		}
		var pointCount uint32
		if err := binary.Read(r, binary.BigEndian, &pointCount); err != nil {
			return nil, err
		}
		g.Points = make([][]int32, pointCount)
		for j := range g.Points {
			rec := make([]int32, recordLen)
			for k := range rec {
				if err := binary.Read(r, binary.BigEndian, &rec[k]); err != nil {
					return nil, err
				}
			}
			g.Points[j] = rec
		}
	}
	return d, nil
}

// channelMask includes position and time always, and an optional channel
// whenever any sample in the drawing populates it.
func channelMask(groups []ink.PointGroup) uint32 {
	mask := ChannelX | ChannelY | ChannelTime
	for _, g := range groups {
		for _, s := range g.Points {
			if s.Pressure != ink.ChannelUnknown {
				mask |= ChannelPressure
			}
			if s.TiltX != ink.ChannelUnknown {
				mask |= ChannelTiltX
			}
			if s.TiltY != ink.ChannelUnknown {
				mask |= ChannelTiltY
			}
			if s.Rotation != ink.ChannelUnknown {
				mask |= ChannelRotation
			}
			if s.Altitude != ink.ChannelUnknown {
				mask |= ChannelAltitude
			}
			if s.Azimuth != ink.ChannelUnknown {
				mask |= ChannelAzimuth
			}
		}
	}
	return mask
}

func encodeSample(s ink.Sample, mask uint32, captureTime int64, pixelsPerMM float64) []int32 {
	rec := make([]int32, 0, 9)
	for _, bit := range channelOrder {
		if mask&bit == 0 {
			continue
		}
		var v int32
		switch bit {
		case ChannelX:
			v = scaled(s.X / pixelsPerMM)
		case ChannelY:
			v = scaled(s.Y / pixelsPerMM)
		case ChannelTime:
			v = int32(s.Time - captureTime)
		case ChannelPressure:
			v = scaled(s.Pressure)
		case ChannelTiltX:
			v = scaled(s.TiltX)
		case ChannelTiltY:
			v = scaled(s.TiltY)
		case ChannelRotation:
			v = scaled(s.Rotation)
		case ChannelAltitude:
			v = scaled(s.Altitude)
		case ChannelAzimuth:
			v = scaled(s.Azimuth)
		}
		rec = append(rec, v)
	}
	return rec
}

func channelRanges(mask uint32, records [][]int32) []ChannelInfo {
	var channels []ChannelInfo
	idx := 0
	for _, bit := range channelOrder {
		if mask&bit == 0 {
			continue
		}
		info := ChannelInfo{Channel: bit, Scale: DefaultChannelScale}
		if bit == ChannelTime {
			info.Scale = 1 // already integral milliseconds
		}
		for i, rec := range records {
			if i == 0 || rec[idx] < info.Min {
				info.Min = rec[idx]
			}
			if i == 0 || rec[idx] > info.Max {
				info.Max = rec[idx]
			}
		}
		channels = append(channels, info)
		idx++
	}
	return channels
}

func scaled(v float64) int32 {
	return int32(math.Round(v * DefaultChannelScale))
}

func firstSampleTime(groups []ink.PointGroup) int64 {
	for _, g := range groups {
		if len(g.Points) > 0 {
			return g.Points[0].Time
		}
	}
	return 0
}

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.BigEndian, uint16(len(s)))
	buf.WriteString(s)
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}
