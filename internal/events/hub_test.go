package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	h := NewHub(4)
	sub, cancel := h.Subscribe()
	defer cancel()

	h.Publish("scheduler.tick", map[string]any{"at": "now"})

	ev := <-sub
	assert.Equal(t, "scheduler.tick", ev.Type)
	assert.Equal(t, int64(1), ev.ID)
}

func TestSlowSubscriberNeverBlocksPublisher(t *testing.T) {
	h := NewHub(4)
	_, cancel := h.Subscribe() // never drained
	defer cancel()

	for i := 0; i < 10; i++ {
		h.Publish("driver.error", nil)
	}
}

func TestSnapshotSinceReturnsOnlyNewer(t *testing.T) {
	h := NewHub(4)
	h.Publish("a", nil)
	h.Publish("b", nil)
	h.Publish("c", nil)

	snap := h.SnapshotSince(1)
	require.Len(t, snap, 2)
	assert.Equal(t, "b", snap[0].Type)
	assert.Equal(t, "c", snap[1].Type)
}

func TestRingBufferOverwritesOldest(t *testing.T) {
	h := NewHub(2)
	h.Publish("a", nil)
	h.Publish("b", nil)
	h.Publish("c", nil)

	snap := h.SnapshotSince(0)
	require.Len(t, snap, 2)
	assert.Equal(t, "b", snap[0].Type)
	assert.Equal(t, "c", snap[1].Type)
}
