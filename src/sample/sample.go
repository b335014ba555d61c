// Package sample defines the decoded sensor reading and the payload decoder.
package sample

import (
	"encoding/binary"
	"math"
	"time"
)

// PayloadSize is the exact on-wire size of a valid reading. Anything else is
// discarded without producing a sample.
const PayloadSize = 4

// Sample is a single decoded pressure reading. Immutable once created; owned
// by the sliding window buffer after it crosses the ingestion channel.
type Sample struct {
	At    time.Time
	Value float64
}

// Format selects how the 4 payload bytes are interpreted. The two deployed
// sensor firmwares publish the same physical value in different encodings.
type Format int

const (
	// FormatInt32 interprets the payload as a little-endian signed 32-bit integer.
	FormatInt32 Format = iota
	// FormatFloat32 interprets the payload as a little-endian IEEE-754 32-bit float.
	FormatFloat32
)

func (f Format) String() string {
	switch f {
	case FormatFloat32:
		return "float32"
	default:
		return "int32"
	}
}

// Decoder turns raw payloads into physical values.
type Decoder struct {
	format Format
}

func NewDecoder(format Format) Decoder {
	return Decoder{format: format}
}

// Decode converts a payload to a float64 value. The second return is false
// when the payload length is wrong; there is no further validation (range,
// NaN and Inf all pass through untouched).
func (d Decoder) Decode(payload []byte) (float64, bool) {
	if len(payload) != PayloadSize {
		return 0, false
	}
	bits := binary.LittleEndian.Uint32(payload)
	switch d.format {
	case FormatFloat32:
		return float64(math.Float32frombits(bits)), true
	default:
		return float64(int32(bits)), true
	}
}
