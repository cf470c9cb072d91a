package main

import (
	"context"
	"csvcot/internal/cli"
	"csvcot/internal/global"
	"csvcot/internal/logctx"
	"flag"
	"fmt"
	"os"
	"runtime"
)

func main() {
	cliOpts := cli.DefineOptions()

	args := os.Args
	commandFlags := flag.NewFlagSet(args[0], flag.ExitOnError)
	cli.SetGlobalArguments(commandFlags)

	commandFlags.Usage = func() {
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
	}
	if len(args) < 2 {
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
		os.Exit(1)
	}
	commandFlags.Parse(args[1:])

	// Global flags may precede the command
	remaining := commandFlags.Args()
	if len(remaining) == 0 {
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
		os.Exit(1)
	}
	command := remaining[0]
	args = remaining[1:]

	// Setting global logging
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := logctx.NewLogger("global", global.Verbosity, ctx.Done()) // New logger tied to global
	ctx = logctx.WithLogger(ctx, logger)                               // Add logger to global ctx
	logctx.StartWatcher(logger, os.Stdout)                             // Send received output to stdout

	// Flushes queued log lines before leaving
	exit := func(code int) {
		cancel()
		logger.Wake()
		logger.Wait()
		os.Exit(code)
	}

	// Process commands
	switch command {
	case "run":
		cli.RunMode(ctx, exit, cliOpts, command, args)
	case "configure":
		cli.SetupMode(cliOpts, command, args)
	case "version":
		if global.Verbosity > global.VerbosityStandard || (len(args) > 0 && (args[0] == "--verbosity" || args[0] == "-v")) {
			fmt.Printf("%s %s\n", global.ProgBaseName, global.ProgVersion)
			fmt.Printf("Built using %s(%s) for %s on %s\n", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
		} else {
			fmt.Println(global.ProgVersion)
		}
	default:
		cli.PrintHelpMenu(commandFlags, cli.RootCLICommand, cliOpts)
		os.Exit(1)
	}

	// Finish up any stdout writes for global logger
	cancel()
	logger.Wake()
	logger.Wait()
}
