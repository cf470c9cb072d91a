// Incrementally converts new rows of one track file into events
package tailer

import (
	"context"
	"csvcot/internal/cot"
	"csvcot/internal/global"
	"csvcot/internal/logctx"
	"csvcot/internal/track"
	"csvcot/internal/transport"
	"errors"
	"os"
	"runtime/debug"
	"time"
)

func New(namespace []string, cfg Config, encoder *cot.Encoder, sender transport.Sender, control Controller) (new *Tailer) {
	if cfg.Aliases == nil {
		cfg.Aliases = track.DefaultAliases()
	}
	new = &Tailer{
		Namespace: append(append([]string(nil), namespace...), global.NSTailer, cfg.Path),
		cfg:       cfg,
		encoder:   encoder,
		sender:    sender,
		control:   control,
		Metrics:   &MetricStorage{},
	}
	return
}

// Copy of the current file progress
func (tailer *Tailer) State() (state FileState) {
	tailer.control.Lock()
	defer tailer.control.Unlock()
	state = tailer.state
	return
}

func (tailer *Tailer) Path() (path string) {
	path = tailer.cfg.Path
	return
}

// Runs one polling cycle for the file: at most one removal and one position are sent
func (tailer *Tailer) Process(ctx context.Context) {
	ctx = logctx.AppendCtxTag(ctx, global.NSTailer, tailer.cfg.Path)

	// Record panics, other files keep going
	defer func() {
		if fatalError := recover(); fatalError != nil {
			stack := debug.Stack()
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"panic while processing '%s': %v\n%s", tailer.cfg.Path, fatalError, stack)
		}
	}()

	state := tailer.State()
	if state.Exhausted {
		return
	}

	lines, err := readLines(tailer.cfg.Path, tailer.cfg.MaxFileBytes)
	if err != nil {
		tailer.Metrics.ReadFailures.Add(1)
		if errors.Is(err, os.ErrNotExist) {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"File '%s' not found. Skipping.\n", tailer.cfg.Path)
		} else {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"Processing '%s': %v\n", tailer.cfg.Path, err)
		}
		return
	}
	totalLines := len(lines)
	tailer.Metrics.LinesScanned.Add(uint64(totalLines))

	if totalLines > 0 && !state.HeaderProcessed {
		fieldnames := track.SplitLine(lines[0])
		keys, err := track.ResolveKeys(fieldnames, tailer.cfg.Aliases)
		if err != nil {
			tailer.update(func(s *FileState) {
				s.Exhausted = true
				s.LastLine = totalLines
			})
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"File '%s': required LAT/LON headers not found, ignoring file: %v\n", tailer.cfg.Path, err)
			return
		}

		tailer.update(func(s *FileState) {
			s.Keys = keys
			s.Fieldnames = fieldnames
			s.HeaderProcessed = true
		})
		state = tailer.State()
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
			"Initialized header for '%s' (Default Callsign: %s)\n", tailer.cfg.Path, tailer.cfg.DefaultCallsign)
	}
	if !state.HeaderProcessed {
		// Empty file
		return
	}

	cursor := max(1, state.LastLine)
	if tailer.control.JumpPending() && cursor < totalLines {
		cursor = max(1, totalLines-1)
		tailer.update(func(s *FileState) { s.LastLine = cursor })
		tailer.control.LatchJump()
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
			"Jump executed for '%s'. Starting at line %d.\n", tailer.cfg.Path, cursor+1)
	}

	var lineIndex int
	if cursor >= totalLines {
		if !tailer.control.JumpLatched() || totalLines <= 1 {
			// No new data
			return
		}
		lineIndex = totalLines - 1
	} else {
		lineIndex = cursor
	}

	values := track.SplitLine(lines[lineIndex])
	row, err := track.Zip(state.Fieldnames, values)
	if err != nil {
		tailer.Metrics.RowsSkipped.Add(1)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"Row %d in '%s' has %d columns, expected %d. Skipping.\n",
			lineIndex+1, tailer.cfg.Path, len(values), len(state.Fieldnames))
		return
	}
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Processing '%s' (Line %d)\n", tailer.cfg.Path, lineIndex+1)

	if state.PreviousRow != nil {
		if !tailer.sendRemoval(ctx, state) {
			return
		}
	}

	callsign := cot.CallsignFor(row, state.Keys, tailer.cfg.DefaultCallsign)
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Processing new coordinate for '%s'\n", callsign)

	payload, err := tailer.encoder.Position(row, state.Keys, tailer.cfg.DefaultCallsign)
	if err != nil {
		tailer.Metrics.EncodeFailures.Add(1)
		tailer.update(func(s *FileState) { s.PreviousRow = nil })
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"Invalid row %d in '%s': %v\n", lineIndex+1, tailer.cfg.Path, err)
		return
	}

	err = tailer.sender.Send(ctx, payload)
	if err != nil {
		tailer.Metrics.SendFailures.Add(1)
	} else {
		tailer.Metrics.PositionsSent.Add(1)
	}

	latched := tailer.control.JumpLatched()
	tailer.update(func(s *FileState) {
		s.PreviousRow = row
		if latched && lineIndex >= totalLines-1 {
			// Pinned to the final line until the file grows
			s.LastLine = lineIndex
		} else {
			s.LastLine = lineIndex + 1
		}
	})
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Sent new position for '%s' (%s).\n", tailer.cfg.Path, callsign)
}

// Sends the removal of the previous row then waits out the removal gap.
// Reports false when the cycle was cancelled during the wait.
func (tailer *Tailer) sendRemoval(ctx context.Context, state FileState) (proceed bool) {
	callsign := cot.CallsignFor(state.PreviousRow, state.Keys, tailer.cfg.DefaultCallsign)

	payload, err := tailer.encoder.Removal(callsign)
	if err != nil {
		tailer.Metrics.EncodeFailures.Add(1)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"Failed building removal for '%s': %v\n", callsign, err)
		proceed = true
		return
	}

	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Sending removal for '%s'\n", callsign)
	err = tailer.sender.Send(ctx, payload)
	if err != nil {
		tailer.Metrics.SendFailures.Add(1)
	} else {
		tailer.Metrics.RemovalsSent.Add(1)
	}

	if tailer.cfg.RemovalGap <= 0 {
		proceed = true
		return
	}

	timer := time.NewTimer(tailer.cfg.RemovalGap)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
		proceed = true
	}
	return
}

func (tailer *Tailer) update(fn func(state *FileState)) {
	tailer.control.Lock()
	defer tailer.control.Unlock()
	fn(&tailer.state)
}
