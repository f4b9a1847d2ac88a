package ink

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu      sync.Mutex
	samples []Sample
}

func (c *collector) deliver(s Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = append(c.samples, s)
}

func (c *collector) snapshot() []Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	return out
}

func TestThrottlerZeroIntervalIsDirect(t *testing.T) {
	c := &collector{}
	th := NewThrottler(0, c.deliver)
	for i := 0; i < 5; i++ {
		th.Add(NewSample(float64(i), 0, int64(i)))
	}
	assert.Len(t, c.snapshot(), 5)
}

func TestThrottlerLeadingCallIsImmediate(t *testing.T) {
	c := &collector{}
	th := NewThrottler(time.Second, c.deliver)
	th.Add(NewSample(1, 1, 0))
	require.Len(t, c.snapshot(), 1, "first sample in a quiet period goes straight through")
}

func TestThrottlerCoalescesToMostRecent(t *testing.T) {
	c := &collector{}
	th := NewThrottler(time.Second, c.deliver)

	th.Add(NewSample(1, 0, 0))  // leading, delivered
	th.Add(NewSample(2, 0, 10)) // pending
	th.Add(NewSample(3, 0, 20)) // replaces pending
	th.Flush()

	got := c.snapshot()
	require.Len(t, got, 2, "intermediate sample is coalesced away")
	assert.Equal(t, 1.0, got[0].X)
	assert.Equal(t, 3.0, got[1].X, "flush delivers the most recent pending sample")
}

func TestThrottlerTrailingTimerDelivers(t *testing.T) {
	c := &collector{}
	th := NewThrottler(20*time.Millisecond, c.deliver)

	th.Add(NewSample(1, 0, 0))
	th.Add(NewSample(2, 0, 5))

	assert.Eventually(t, func() bool {
		return len(c.snapshot()) == 2
	}, time.Second, 5*time.Millisecond, "pending sample must arrive when the window expires")
	assert.Equal(t, 2.0, c.snapshot()[1].X)
}

func TestThrottlerFlushWithoutPendingIsNoop(t *testing.T) {
	c := &collector{}
	th := NewThrottler(time.Second, c.deliver)
	th.Flush()
	assert.Empty(t, c.snapshot())
}
