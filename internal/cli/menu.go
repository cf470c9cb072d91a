package cli

import (
	"csvcot/internal/global"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const RootCLICommand string = "root"

// Full standardized help menu on stdout
func PrintHelpMenu(fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	writeHelpMenu(os.Stdout, filepath.Base(os.Args[0]), fs, command, rootCmd)
}

func writeHelpMenu(out io.Writer, program string, fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	const baseIndentSpaces = 2

	curCmdSet := rootCmd
	isRoot := command == "" || command == RootCLICommand
	if !isRoot {
		cmd, ok := rootCmd.ChildCommands[command]
		if !ok {
			fmt.Fprintf(out, "Unknown command: %s\n", command)
			return
		}
		curCmdSet = cmd
	}

	// Usage line, root name omitted
	usageParts := []string{program}
	if !isRoot {
		usageParts = append(usageParts, curCmdSet.CommandName)
	}
	if len(curCmdSet.ChildCommands) > 0 {
		usageParts = append(usageParts, "[subcommand]")
	}
	usageParts = append(usageParts, "[options]")
	if curCmdSet.UsageOption != "" {
		usageParts = append(usageParts, curCmdSet.UsageOption)
	}
	fmt.Fprintf(out, "Usage: %s\n\n", strings.Join(usageParts, " "))

	// Description
	if isRoot {
		fmt.Fprintln(out, curCmdSet.Description)
		fmt.Fprintln(out, curCmdSet.FullDescription)
		fmt.Fprintln(out)
	} else if curCmdSet.FullDescription != "" {
		fmt.Fprintln(out, "  Description:")
		fmt.Fprintf(out, "    %s\n\n", curCmdSet.FullDescription)
	}

	// Subcommands
	if len(curCmdSet.ChildCommands) > 0 {
		indent := strings.Repeat(" ", baseIndentSpaces)
		fmt.Fprintf(out, "%sSubcommands:\n", indent)

		subNames := make([]string, 0, len(curCmdSet.ChildCommands))
		maxLen := 0
		for name := range curCmdSet.ChildCommands {
			subNames = append(subNames, name)
			maxLen = max(maxLen, len(name))
		}
		sort.Strings(subNames)

		cmdIndent := strings.Repeat(" ", baseIndentSpaces+2)
		for _, name := range subNames {
			padding := strings.Repeat(" ", maxLen-len(name)+2)
			fmt.Fprintf(out, "%s%s%s - %s\n", cmdIndent, name, padding, curCmdSet.ChildCommands[name].Description)
		}
		fmt.Fprintln(out)
	}

	writeFlagOptions(out, fs, baseIndentSpaces)

	if curCmdSet.Footer != "" {
		fmt.Fprintln(out)
		fmt.Fprint(out, curCmdSet.Footer)
	}
}

// Prints each flag once with its short and long names joined ("-c, --config")
func writeFlagOptions(out io.Writer, fs *flag.FlagSet, baseIndentSpaces int) {
	const argToUsageSpaces int = 2 // like "  -t, --test[  ]Some usage text"

	type optInfo struct {
		short      string
		long       string
		usage      string
		defaultVal string
	}

	// Flags sharing a usage text are aliases of each other
	byUsage := make(map[string]*optInfo)
	var opts []*optInfo
	fs.VisitAll(func(arg *flag.Flag) {
		opt, seen := byUsage[arg.Usage]
		if !seen {
			opt = &optInfo{usage: arg.Usage, defaultVal: arg.DefValue}
			byUsage[arg.Usage] = opt
			opts = append(opts, opt)
		}
		if len(arg.Name) == 1 {
			opt.short = "-" + arg.Name
		} else {
			opt.long = "--" + arg.Name
		}
	})

	// Long-only flags are indented to line up with the long names of paired flags
	const shortColumn = len("-x, ")
	left := func(opt *optInfo) (text string) {
		switch {
		case opt.short != "" && opt.long != "":
			text = opt.short + ", " + opt.long
		case opt.short != "":
			text = opt.short
		default:
			text = strings.Repeat(" ", shortColumn) + opt.long
		}
		return
	}

	sortKey := func(opt *optInfo) string {
		return strings.ToLower(strings.TrimLeft(opt.short+opt.long, "-"))
	}
	sort.Slice(opts, func(i, j int) bool {
		return sortKey(opts[i]) < sortKey(opts[j])
	})

	maxLen := 0
	for _, opt := range opts {
		maxLen = max(maxLen, len(left(opt)))
	}

	indent := strings.Repeat(" ", baseIndentSpaces)
	fmt.Fprintf(out, "%sOptions:\n", indent)
	for _, opt := range opts {
		names := left(opt)
		padding := strings.Repeat(" ", maxLen-len(names)+argToUsageSpaces)

		// Skip printing any "empty" defaults
		desc := opt.usage
		if opt.defaultVal != "" && opt.defaultVal != "false" && opt.defaultVal != "0" {
			desc += fmt.Sprintf(" [default: %s]", opt.defaultVal)
		}
		fmt.Fprintf(out, "%s%s%s%s\n", indent, names, padding, desc)
	}
}
