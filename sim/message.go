// Defines the Message value and its receiver addressing. Messages are
// immutable once scheduled onto the MessageBus; entities interact
// exclusively by exchanging them.

package sim

import "fmt"

// MessageReceiver is a closed tagged variant addressing a message's
// destination. Only DirectReceiver is dispatched in v1; Radius2DReceiver is
// accepted, stored, and logged, but not yet delivered (see World.Update).
type MessageReceiver interface {
	isMessageReceiver()
	String() string
}

// DirectReceiver addresses a single entity by id.
type DirectReceiver struct {
	ID EntityId
}

func (DirectReceiver) isMessageReceiver() {}
func (r DirectReceiver) String() string   { return fmt.Sprintf("direct(%s)", r.ID) }

// Radius2DReceiver addresses every entity within radius of (x, y). Spatial
// indexing is not implemented; messages with this receiver are logged and
// never delivered.
type Radius2DReceiver struct {
	X, Y, Radius float64
}

func (Radius2DReceiver) isMessageReceiver() {}
func (r Radius2DReceiver) String() string {
	return fmt.Sprintf("radius2d(x=%.2f,y=%.2f,r=%.2f)", r.X, r.Y, r.Radius)
}

// Message is an immutable, scheduled unit of communication between entities.
type Message struct {
	Sender       EntityId
	Receiver     MessageReceiver
	Kind         string
	Payload      Value
	DeliveryTick Tick
}
