package hub

import (
	"time"

	"github.com/rcdrive/rcdrive/internal/sink"
)

// WSMessage is a message sent from the bridge to a monitor client.
type WSMessage struct {
	Type      string             `json:"type"`      // "full" or "delta"
	Seq       int64              `json:"seq"`       // sequence number for ordering
	Timestamp int64              `json:"timestamp"` // Unix timestamp in milliseconds
	Data      *sink.ControlState `json:"data,omitempty"`
	Changes   *sink.DeltaChanges `json:"changes,omitempty"`
}

// NewFullMessage creates a "full" message carrying the complete output state.
func NewFullMessage(seq int64, state *sink.ControlState) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      state,
	}
}

// NewDeltaMessage creates a "delta" message carrying only changed fields.
func NewDeltaMessage(seq int64, changes *sink.DeltaChanges) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// ClientMessage is a message sent from a monitor client to the bridge.
type ClientMessage struct {
	Type string `json:"type"` // "full_sync"
}
