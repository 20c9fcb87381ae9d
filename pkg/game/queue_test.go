package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue()

	a := newFakeClient("alice")
	b := newFakeClient("bob")
	c := newFakeClient("carol")

	require.True(t, q.Enqueue(a))
	require.True(t, q.Enqueue(b))
	require.True(t, q.Enqueue(c))

	first, second, ok := q.PopPair()
	require.True(t, ok)
	assert.Equal(t, a.ConnectionID(), first.ConnectionID())
	assert.Equal(t, b.ConnectionID(), second.ConnectionID())
	assert.Equal(t, 1, q.Len())
}

func TestQueuePopPairNeedsTwo(t *testing.T) {
	q := NewQueue()

	_, _, ok := q.PopPair()
	assert.False(t, ok)

	q.Enqueue(newFakeClient("solo"))
	_, _, ok = q.PopPair()
	assert.False(t, ok)
	assert.Equal(t, 1, q.Len())
}

func TestQueueDuplicateEnqueue(t *testing.T) {
	q := NewQueue()
	a := newFakeClient("alice")

	require.True(t, q.Enqueue(a))
	assert.False(t, q.Enqueue(a))
	assert.Equal(t, 1, q.Len())
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue()
	a := newFakeClient("alice")
	b := newFakeClient("bob")

	q.Enqueue(a)
	q.Enqueue(b)

	assert.True(t, q.Remove(a.ConnectionID()))
	assert.False(t, q.Remove(a.ConnectionID()))
	assert.Equal(t, 1, q.Len())

	// The remaining entry still pairs in order with a newcomer.
	c := newFakeClient("carol")
	q.Enqueue(c)
	first, second, ok := q.PopPair()
	require.True(t, ok)
	assert.Equal(t, b.ConnectionID(), first.ConnectionID())
	assert.Equal(t, c.ConnectionID(), second.ConnectionID())
}
