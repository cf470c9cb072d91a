package global

// Node of the CLI command tree used by the help menu
type CommandSet struct {
	CommandName     string                 // Exact name of cli command
	UsageOption     string                 // Positional arguments shown after [options]
	Description     string                 // Short text displayed on parent command
	FullDescription string                 // Long text displayed on current command
	Footer          string                 // Printed after the option list, may be empty
	ChildCommands   map[string]*CommandSet // Available subcommands
}

type CtxKey string
