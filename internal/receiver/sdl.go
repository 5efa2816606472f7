package receiver

import (
	"context"
	"log"
	"math"
	"runtime"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"
)

const pollDelayNS = 4_000_000 // ~250Hz acquisition, well above the control loop rate

// SDLReader reads receiver channels from the transmitter's USB joystick
// interface via the SDL3 Joystick API. Axis values are normalized into
// [ChannelMin, ChannelMax] and stored in a snapshot buffer; the control loop
// reads the snapshot, never the live SDL state, so acquisition and the
// pipeline never share mutable fields.
type SDLReader struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	available bool

	joysticks map[sdl.JoystickID]*sdl.Joystick
	names     map[sdl.JoystickID]string
	activeID  sdl.JoystickID
	hasActive bool
}

func NewSDLReader() *SDLReader {
	return &SDLReader{
		joysticks: make(map[sdl.JoystickID]*sdl.Joystick),
		names:     make(map[sdl.JoystickID]string),
	}
}

// Snapshot returns the most recent complete channel readings.
func (r *SDLReader) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Available reports whether a receiver is connected and has produced a full
// set of channel readings.
func (r *SDLReader) Available() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.available
}

// Run initializes SDL and runs the acquisition loop on the current thread.
// Must be called from a goroutine; it locks its OS thread for SDL.
func (r *SDLReader) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		log.Fatalf("SDL init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	log.Println("SDL3 joystick subsystem initialized")

	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		default:
		}

		r.processEvents()
		r.pollChannels()
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *SDLReader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)
		}
	}
}

func (r *SDLReader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	id := sdl.GetJoystickID(js)
	name := sdl.GetJoystickName(js)
	r.joysticks[id] = js
	r.names[id] = name

	log.Printf("Receiver connected: %s (ID=%d axes=%d)", name, id, sdl.GetNumJoystickAxes(js))

	// Single-device by design: the first connected joystick is the receiver.
	if !r.hasActive {
		r.activeID = id
		r.hasActive = true
		log.Printf("Active receiver: %s", name)
	}
}

func (r *SDLReader) removeJoystick(instanceID sdl.JoystickID) {
	js, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	log.Printf("Receiver disconnected: %s", r.names[instanceID])
	sdl.CloseJoystick(js)
	delete(r.joysticks, instanceID)
	delete(r.names, instanceID)

	if r.hasActive && r.activeID == instanceID {
		r.hasActive = false
		r.mu.Lock()
		r.snapshot = Snapshot{}
		r.available = false
		r.mu.Unlock()

		// Promote the next connected joystick, if any.
		for id, next := range r.joysticks {
			if sdl.JoystickConnected(next) {
				r.activeID = id
				r.hasActive = true
				log.Printf("Active receiver switched to: %s", r.names[id])
				break
			}
		}
	}
}

func (r *SDLReader) closeAll() {
	for id, js := range r.joysticks {
		sdl.CloseJoystick(js)
		delete(r.joysticks, id)
		delete(r.names, id)
	}
}

func (r *SDLReader) pollChannels() {
	if !r.hasActive {
		return
	}
	js, exists := r.joysticks[r.activeID]
	if !exists || !sdl.JoystickConnected(js) {
		return
	}

	numAxes := int(sdl.GetNumJoystickAxes(js))
	var snap Snapshot
	for ch := 0; ch < NumChannels; ch++ {
		if ch >= numAxes {
			snap[ch] = ChannelRest
			continue
		}
		snap[ch] = normalizeAxis(sdl.GetJoystickAxis(js, int32(ch)))
	}

	r.mu.Lock()
	r.snapshot = snap
	r.available = true
	r.mu.Unlock()
}

// normalizeAxis converts a raw SDL axis value (-32768..32767) into the
// channel range [ChannelMin, ChannelMax].
func normalizeAxis(raw int16) int {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return int(math.Round(v * ChannelMax))
}
