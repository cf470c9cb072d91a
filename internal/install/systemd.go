package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Renders the systemd unit for the given binary and config and writes it to unitFilePath.
// Track file paths in the config resolve against the config directory.
func WriteServiceUnit(unitFilePath string, binaryPath string, configFilePath string) (err error) {
	if unitFilePath == "" {
		err = fmt.Errorf("specify unit file path via the --systemd-unit argument")
		return
	}
	if binaryPath == "" {
		binaryPath = DefaultBinaryPath
	}
	if configFilePath == "" {
		configFilePath = DefaultConfigPath
	}

	unitFile, err := installationFiles.ReadFile("static-files/csvcot.service")
	if err != nil {
		err = fmt.Errorf("unable to retrieve unit file from embedded filesystem: %w", err)
		return
	}

	// Inject variables into file
	newUnitFile := strings.Replace(string(unitFile), "$executableFilePath", binaryPath, 1)
	newUnitFile = strings.Replace(newUnitFile, "$configFilePath", configFilePath, 1)
	newUnitFile = strings.Replace(newUnitFile, "$workingDirectory", filepath.Dir(configFilePath), 1)

	err = os.WriteFile(unitFilePath, []byte(newUnitFile), 0644)
	if err != nil {
		err = fmt.Errorf("failed to write unit file: %w", err)
		return
	}

	fmt.Printf("Successfully wrote Systemd service to '%s'\n", unitFilePath)
	fmt.Printf("  IMPORTANT: install it with 'systemctl daemon-reload && systemctl enable --now %s'\n", filepath.Base(unitFilePath))
	return
}
