// Generation of configuration and service files for a playback installation
package install

import (
	"embed"
)

// Read in installation static files at compile time
//
//go:embed static-files/*
var installationFiles embed.FS

const (
	DefaultBinaryPath string = "/usr/local/bin/csvcot"
	DefaultConfigPath string = "/etc/csvcot/csvcot.yaml"
)
