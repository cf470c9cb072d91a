package cli

import (
	"csvcot/internal/global"
	"csvcot/internal/install"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Setup options
func SetupMode(cliOpts *global.CommandSet, commandname string, args []string) {
	var templateConfPath string
	var unitPath string
	var binaryPath string
	var configPath string

	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	commandFlags.StringVar(&templateConfPath, "config-template", "", "Write a template YAML config with all defaults to this path")
	commandFlags.StringVar(&unitPath, "systemd-unit", "", "Write a systemd service unit to this path")
	commandFlags.StringVar(&binaryPath, "binary-path", install.DefaultBinaryPath, "Executable referenced by the systemd unit")
	SetCommon(commandFlags, &configPath)

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
	}
	if len(args) < 1 {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
		os.Exit(1)
	}
	commandFlags.Parse(args)

	var err error
	if templateConfPath != "" {
		interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		err = install.CreateTemplateConfig(templateConfPath, interactive, os.Stdin, os.Stdout)
	} else if unitPath != "" {
		err = install.WriteServiceUnit(unitPath, binaryPath, configPath)
	} else {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
