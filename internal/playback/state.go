package playback

import (
	"csvcot/internal/tailer"
	"fmt"
	"time"
)

func NewState(interval time.Duration) (new *State) {
	new = &State{
		interval: interval,
		tailers:  make(map[string]*tailer.Tailer),
	}
	return
}

// Lock and Unlock expose the state mutex to tailers for their file progress
func (state *State) Lock() {
	state.mu.Lock()
}

func (state *State) Unlock() {
	state.mu.Unlock()
}

// Current polling interval
func (state *State) Interval() (interval time.Duration) {
	state.mu.Lock()
	defer state.mu.Unlock()
	interval = state.interval
	return
}

// Replaces the polling interval, takes effect after the running cycle
func (state *State) SetInterval(interval time.Duration) (err error) {
	if interval <= 0 {
		err = fmt.Errorf("interval must be positive, got %v", interval)
		return
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	state.interval = interval
	return
}

func (state *State) RequestJump() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.jumpPending = true
}

func (state *State) JumpPending() (pending bool) {
	state.mu.Lock()
	defer state.mu.Unlock()
	pending = state.jumpPending
	return
}

func (state *State) JumpLatched() (latched bool) {
	state.mu.Lock()
	defer state.mu.Unlock()
	latched = state.jumpLatched
	return
}

func (state *State) LatchJump() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.jumpLatched = true
}

// Clears a pending jump, reporting whether one was pending
func (state *State) ClearJump() (wasPending bool) {
	state.mu.Lock()
	defer state.mu.Unlock()
	wasPending = state.jumpPending
	state.jumpPending = false
	return
}

// Returns the tailer for path, creating it with create on first access
func (state *State) Tailer(path string, create func() *tailer.Tailer) (fileTailer *tailer.Tailer) {
	state.mu.Lock()
	defer state.mu.Unlock()

	fileTailer, ok := state.tailers[path]
	if ok || create == nil {
		return
	}
	fileTailer = create()
	state.tailers[path] = fileTailer
	return
}
