package tailer

import (
	"csvcot/internal/cot"
	"csvcot/internal/track"
	"csvcot/internal/transport"
	"sync"
	"sync/atomic"
	"time"
)

// Global playback mode shared by every tailer.
// Its lock also guards the FileState of every tailer; its Jump methods take the lock themselves.
type Controller interface {
	sync.Locker
	JumpPending() bool
	JumpLatched() bool
	LatchJump()
}

type Config struct {
	Path            string
	DefaultCallsign string // used for rows without a callsign
	Aliases         track.AliasSet
	RemovalGap      time.Duration // wait between removal and the next position
	MaxFileBytes    int64         // 0 disables the limit
}

// Progress through one track file. Lives for the whole process.
type FileState struct {
	LastLine        int       // index of the next line to emit (0 is the header)
	PreviousRow     track.Row // last row successfully sent, nil when none
	Keys            track.DiscoveredKeys
	Fieldnames      []string
	HeaderProcessed bool
	Exhausted       bool // header unusable, file is never read again
}

type Tailer struct {
	Namespace []string
	cfg       Config
	encoder   *cot.Encoder
	sender    transport.Sender
	control   Controller
	state     FileState // guarded by control
	Metrics   *MetricStorage
}

type MetricStorage struct {
	LinesScanned   atomic.Uint64 // whole file length, added on every read
	PositionsSent  atomic.Uint64
	RemovalsSent   atomic.Uint64
	RowsSkipped    atomic.Uint64 // column count mismatches
	EncodeFailures atomic.Uint64
	ReadFailures   atomic.Uint64
	SendFailures   atomic.Uint64
}
