// Operator commands read line by line from standard input
package console

import (
	"bufio"
	"context"
	"csvcot/internal/global"
	"csvcot/internal/logctx"
	"csvcot/internal/playback"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const helpText string = `Commands:
  jump             switch every track to its latest row
  speed <seconds>  change the polling interval
  quit             exit immediately
  help             show this list
`

func New(input io.Reader, output io.Writer, controls Controls) (new *Console) {
	new = &Console{
		input:    input,
		output:   output,
		controls: controls,
		Exit:     os.Exit,
	}

	file, ok := input.(*os.File)
	if ok {
		new.interactive = term.IsTerminal(int(file.Fd()))
	}
	return
}

// Reads commands until end of input or cancellation
func (console *Console) Run(ctx context.Context) {
	ctx = logctx.AppendCtxTag(ctx, global.NSConsole)

	if console.interactive {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
			"Command listener ready. Enter: jump | quit | speed <seconds>\n")
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(console.input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				// End of input ends the listener
				select {
				case err := <-readErr:
					if err != nil {
						logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
							"Command listener: %v\n", err)
					}
				default:
				}
				return
			}
			console.Handle(ctx, line)
		}
	}
}

// Executes a single command line
func (console *Console) Handle(ctx context.Context, line string) {
	commandInput := strings.ToLower(strings.TrimSpace(line))
	parts := strings.Fields(commandInput)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "jump":
		console.controls.RequestJump()
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "jump received\n")
	case "quit":
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "quit received. Exiting\n")
		console.Exit(0)
	case "speed":
		if len(parts) < 2 {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
				"speed requires an interval in seconds. Current: %ss\n", playback.FormatSeconds(console.controls.Interval()))
			return
		}

		interval, err := playback.ParseSeconds(parts[1])
		if err == nil {
			err = console.controls.SetInterval(interval)
		}
		if err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"Invalid speed value: '%s'\n", parts[1])
			return
		}
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
			"Polling interval set to: %s seconds\n", playback.FormatSeconds(console.controls.Interval()))
	case "help":
		fmt.Fprint(console.output, helpText)
	default:
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"Unknown command: '%s'\n", commandInput)
	}
}
