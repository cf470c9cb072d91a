package logctx

import (
	"sync"
	"time"
)

// Log Event Structure
type Event struct {
	Timestamp time.Time
	Severity  string
	Tags      []string
	Message   string
}

// Logger Struct
type Logger struct {
	ID         string
	CreatedAt  time.Time
	queue      []Event         // event buffer
	mutex      sync.Mutex      // protects buffer and print level
	cond       *sync.Cond      // signals watcher that events are queued
	Done       <-chan struct{} // watcher exits once closed and queue is drained
	PrintLevel int             // events above this verbosity are dropped (errors always kept)
	wg         *sync.WaitGroup // holds main exit until watchers finish writing
}

// Tracks repeated messages for the watcher
type dedupState struct {
	lastMsg          string
	repeatCount      int
	lastSuppressTime time.Time
}
