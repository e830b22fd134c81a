package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterState struct {
	Value int
	Tags  []string
}

func TestUpdateReplacesSnapshot(t *testing.T) {
	c := New(counterState{})

	c.Update(func(s counterState) counterState {
		s.Value = 1
		s.Tags = append([]string{}, "a")
		return s
	})

	before := c.Snapshot()

	c.Update(func(s counterState) counterState {
		s.Value = 2
		s.Tags = append(append([]string{}, s.Tags...), "b")
		return s
	})

	// The earlier snapshot is untouched by the later mutation.
	assert.Equal(t, 1, before.Value)
	assert.Equal(t, []string{"a"}, before.Tags)

	after := c.Snapshot()
	assert.Equal(t, 2, after.Value)
	assert.Equal(t, []string{"a", "b"}, after.Tags)
}

func TestSubscribeReceivesCommitOrder(t *testing.T) {
	c := New(counterState{})

	var seen []int
	unsubscribe := c.Subscribe(func(s counterState) {
		seen = append(seen, s.Value)
	})
	defer unsubscribe()

	for i := 1; i <= 5; i++ {
		value := i
		c.Update(func(s counterState) counterState {
			s.Value = value
			return s
		})
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	c := New(counterState{})

	calls := 0
	unsubscribe := c.Subscribe(func(counterState) {
		calls++
	})

	c.Update(func(s counterState) counterState {
		s.Value = 1
		return s
	})
	require.Equal(t, 1, calls)

	unsubscribe()

	c.Update(func(s counterState) counterState {
		s.Value = 2
		return s
	})
	assert.Equal(t, 1, calls)
}

func TestMultipleSubscribers(t *testing.T) {
	c := New(counterState{})

	first, second := 0, 0
	defer c.Subscribe(func(counterState) { first++ })()
	defer c.Subscribe(func(counterState) { second++ })()

	c.Update(func(s counterState) counterState { return s })

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
