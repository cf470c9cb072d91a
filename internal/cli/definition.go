package cli

import "csvcot/internal/global"

const runtimeHelp string = `Runtime commands (standard input while running):
  jump             switch all tracks to their latest row
  speed <seconds>  change the polling interval
  quit             exit immediately
  help             list commands

Signals: SIGUSR1 requests a jump, SIGINT/SIGTERM/SIGQUIT/SIGHUP stop playback.
`

func DefineOptions() (cmdOpts *global.CommandSet) {
	// Root level
	root := &global.CommandSet{
		Description:     "CSV track playback to Cursor-on-Target (csvcot)",
		FullDescription: "  Replays recorded CSV track logs as CoT position events over UDP",
		CommandName:     RootCLICommand,
		Footer:          runtimeHelp,
		ChildCommands:   make(map[string]*global.CommandSet),
	}

	// Playback
	root.ChildCommands["run"] = &global.CommandSet{
		CommandName:     "run",
		UsageOption:     "[interval-seconds]",
		Description:     "Play Track Files",
		FullDescription: "Tails the configured CSV files and sends one CoT event per new row to the configured destination",
		Footer:          runtimeHelp,
		ChildCommands:   nil,
	}

	// Setup
	root.ChildCommands["configure"] = &global.CommandSet{
		CommandName:     "configure",
		Description:     "Setup Actions",
		FullDescription: "Generate configuration templates",
		ChildCommands:   nil,
	}

	// Version Info
	root.ChildCommands["version"] = &global.CommandSet{
		CommandName:     "version",
		Description:     "Show Version Information",
		FullDescription: "Display meta information about program",
	}

	cmdOpts = root
	return
}
