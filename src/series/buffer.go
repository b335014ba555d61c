// Package series keeps the bounded sliding-window history of readings and
// derives the per-frame chart coordinates from it.
package series

import (
	"fmt"
	"time"

	"github.com/lambdabear/pressure-monitor/src/sample"
)

// Point is one chart coordinate: seconds elapsed since the window epoch and
// the reading's value. Recomputed every frame, never stored.
type Point struct {
	Elapsed float64
	Value   float64
}

// Buffer is a fixed-capacity FIFO window of samples. Eviction is by count,
// not by age: once full, every push drops the oldest sample. The epoch — the
// timestamp all elapsed times are rebased against — is always the timestamp
// of the oldest sample still in the window.
//
// The buffer is not safe for concurrent use. The render loop is its only
// owner; samples reach it through the ingestion channel.
type Buffer struct {
	capacity int
	samples  []sample.Sample
}

func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		capacity: capacity,
		samples:  make([]sample.Sample, 0, capacity+1),
	}
}

// Push appends a sample. If the window is over capacity afterwards, the
// oldest sample is evicted and the epoch moves to the new oldest timestamp.
// The first sample ever pushed becomes its own epoch, so it renders at
// elapsed time 0.
func (b *Buffer) Push(s sample.Sample) {
	b.samples = append(b.samples, s)
	if len(b.samples) > b.capacity {
		copy(b.samples, b.samples[1:])
		b.samples = b.samples[:len(b.samples)-1]
	}
}

// Len reports the number of samples currently in the window.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Epoch returns the timestamp of the oldest sample in the window, or the
// zero time when the window is empty.
func (b *Buffer) Epoch() time.Time {
	if len(b.samples) == 0 {
		return time.Time{}
	}
	return b.samples[0].At
}

// Frame derives the chart coordinates for every sample in the window. It
// fails only when a sample's timestamp predates the epoch, which cannot
// happen under FIFO eviction with a monotonic clock; callers treat that as a
// broken invariant, not a recoverable condition.
func (b *Buffer) Frame() ([]Point, error) {
	if len(b.samples) == 0 {
		return nil, nil
	}
	epoch := b.samples[0].At
	points := make([]Point, len(b.samples))
	for i, s := range b.samples {
		d := s.At.Sub(epoch)
		if d < 0 {
			return nil, fmt.Errorf("sample %d predates window epoch by %s", i, -d)
		}
		points[i] = Point{Elapsed: d.Seconds(), Value: s.Value}
	}
	return points, nil
}
