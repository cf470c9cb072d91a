package cli

import (
	"csvcot/internal/global"
	"flag"
)

func SetGlobalArguments(fs *flag.FlagSet) {
	fs.IntVar(&global.Verbosity, "v", global.VerbosityStandard, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	fs.IntVar(&global.Verbosity, "verbosity", global.VerbosityStandard, "Increase detailed progress messages (Higher is more verbose) <0...5>")
}

func SetCommon(fs *flag.FlagSet, configPath *string) {
	fs.StringVar(configPath, "c", "", "Path to the YAML or JSON configuration file (optional)")
	fs.StringVar(configPath, "config", "", "Path to the YAML or JSON configuration file (optional)")
}
