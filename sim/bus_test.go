package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBus_DrainDue_OrdersByTickThenFIFO(t *testing.T) {
	bus := NewMessageBus()
	bus.Schedule(Message{Sender: "a", Kind: "first-at-5", DeliveryTick: 5})
	bus.Schedule(Message{Sender: "b", Kind: "first-at-3", DeliveryTick: 3})
	bus.Schedule(Message{Sender: "c", Kind: "second-at-3", DeliveryTick: 3})
	bus.Schedule(Message{Sender: "d", Kind: "at-1", DeliveryTick: 1})

	due := bus.DrainDue(5)
	require.Len(t, due, 4)
	assert.Equal(t, "at-1", due[0].Kind)
	assert.Equal(t, "first-at-3", due[1].Kind)
	assert.Equal(t, "second-at-3", due[2].Kind)
	assert.Equal(t, "first-at-5", due[3].Kind)
}

func TestMessageBus_DrainDue_LeavesFutureMessages(t *testing.T) {
	bus := NewMessageBus()
	bus.Schedule(Message{Kind: "due", DeliveryTick: 2})
	bus.Schedule(Message{Kind: "future", DeliveryTick: 10})

	due := bus.DrainDue(2)
	require.Len(t, due, 1)
	assert.Equal(t, "due", due[0].Kind)
	assert.Equal(t, 1, bus.PendingCount())

	due = bus.DrainDue(10)
	require.Len(t, due, 1)
	assert.Equal(t, "future", due[0].Kind)
	assert.Equal(t, 0, bus.PendingCount())
}

func TestMessageBus_DrainDue_EmptyBusYieldsNothing(t *testing.T) {
	bus := NewMessageBus()
	assert.Empty(t, bus.DrainDue(100))
}

func TestMessageBus_IterAll_DoesNotMutateBus(t *testing.T) {
	bus := NewMessageBus()
	bus.Schedule(Message{Kind: "x", DeliveryTick: 1})
	bus.Schedule(Message{Kind: "y", DeliveryTick: 2})

	all := bus.IterAll()
	assert.Len(t, all, 2)
	assert.Equal(t, 2, bus.PendingCount())
}

func TestMessageBus_PendingCount(t *testing.T) {
	bus := NewMessageBus()
	assert.Equal(t, 0, bus.PendingCount())
	bus.Schedule(Message{DeliveryTick: 1})
	bus.Schedule(Message{DeliveryTick: 2})
	assert.Equal(t, 2, bus.PendingCount())
}
