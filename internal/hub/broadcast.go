package hub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/rcdrive/rcdrive/internal/sink"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster listens for emitted-output state changes and broadcasts them
// to the hub as deltas, resynchronizing with a full state periodically and
// every deltaCountSync messages. lastState and seq are shared with
// SendInitialState, which runs on websocket handler goroutines, so both are
// mutex-guarded.
type Broadcaster struct {
	hub     *Hub
	changes <-chan sink.ControlState

	mu        sync.Mutex
	lastState sink.ControlState
	seq       int64
}

func NewBroadcaster(h *Hub, changes <-chan sink.ControlState) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		changes: changes,
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltaCount int64

	for {
		select {
		case state, ok := <-b.changes:
			if !ok {
				return
			}

			b.mu.Lock()
			delta := sink.ComputeDelta(b.lastState, state)
			b.lastState = state
			if delta.IsEmpty() {
				b.mu.Unlock()
				continue
			}
			b.seq++
			seq := b.seq
			b.mu.Unlock()

			deltaCount++

			if deltaCount >= deltaCountSync {
				b.sendFull(seq, state)
				deltaCount = 0
			} else {
				b.sendDelta(seq, delta)
			}

		case <-ticker.C:
			state, seq := b.nextFull()
			b.sendFull(seq, state)
		}
	}
}

// nextFull claims the next sequence number and returns it with a copy of the
// current state.
func (b *Broadcaster) nextFull() (sink.ControlState, int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.lastState, b.seq
}

// SendInitialState sends the current full state to a newly connected client.
// Safe to call from any goroutine.
func (b *Broadcaster) SendInitialState(c *Client) {
	state, seq := b.nextFull()
	msg := NewFullMessage(seq, &state)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) sendFull(seq int64, state sink.ControlState) {
	msg := NewFullMessage(seq, &state)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling full message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}

func (b *Broadcaster) sendDelta(seq int64, delta *sink.DeltaChanges) {
	msg := NewDeltaMessage(seq, delta)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling delta message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
