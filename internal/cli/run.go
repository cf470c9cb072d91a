package cli

import (
	"context"
	"csvcot/internal/config"
	"csvcot/internal/console"
	"csvcot/internal/global"
	"csvcot/internal/lifecycle"
	"csvcot/internal/logctx"
	"csvcot/internal/playback"
	"flag"
	"fmt"
	"os"
)

// Playback until quit or a termination signal. exit is used by the quit command.
func RunMode(ctx context.Context, exit func(code int), cliOpts *global.CommandSet, commandname string, args []string) {
	var configPath string
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath)

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
	}
	commandFlags.Parse(args)
	logctx.SetLogLevel(ctx, global.Verbosity)

	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)

	cfg, err := buildConfig(ctx, configPath, commandFlags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctx = logctx.RemoveLastCtxTag(ctx)

	daemon := playback.NewDaemon(cfg)
	err = daemon.Start(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting playback daemon: %v\n", err)
		os.Exit(1)
	}

	go lifecycle.SignalHandler(ctx, daemon)

	operator := console.New(os.Stdin, os.Stdout, daemon.State)
	operator.Exit = exit
	go operator.Run(ctx)

	daemon.Run()
}

// Runtime config from the optional file with the positional interval applied on top
func buildConfig(ctx context.Context, configPath string, intervalArg string) (cfg config.Config, err error) {
	if configPath == "" {
		cfg = config.Default()
	} else {
		var fileCfg config.FileConfig
		fileCfg, err = config.Load(configPath)
		if err != nil {
			return
		}
		cfg, err = fileCfg.NewConfig()
		if err != nil {
			return
		}
	}

	if intervalArg == "" {
		return
	}

	interval, parseErr := playback.ParseSeconds(intervalArg)
	if parseErr != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"Error processing command-line argument: %v. Using default %s seconds.\n",
			parseErr, playback.FormatSeconds(cfg.PollingInterval))
		return
	}
	cfg.PollingInterval = interval
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Using command-line initial interval: %s seconds.\n", intervalArg)
	return
}
