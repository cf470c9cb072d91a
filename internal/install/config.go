package install

import (
	"bufio"
	"csvcot/internal/config"
	"fmt"
	"io"
	"os"
	"strings"
)

// Writes the template config, asking before replacing an existing file.
// Without a terminal existing files are never overwritten.
func CreateTemplateConfig(configFilePath string, interactive bool, input io.Reader, output io.Writer) (err error) {
	// Don't overwrite existing
	_, err = os.Stat(configFilePath)
	if err == nil {
		// No terminal - no overwrite
		if !interactive {
			fmt.Fprintf(output, "Existing configuration file present, not overwriting\n")
			return
		}

		// File exists, prompt user for confirmation to overwrite
		fmt.Fprintf(output, "Configuration file already exists at '%s'. Are you SURE you want to overwrite it? (yes/no): ", configFilePath)
		reader := bufio.NewReader(input)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(answer)

		if strings.ToLower(answer) != "yes" {
			fmt.Fprintf(output, "Not overwriting configuration file\n")
			return
		}
	} else if !os.IsNotExist(err) {
		err = fmt.Errorf("failed to check for existing config: %w", err)
		return
	}

	err = config.WriteTemplate(configFilePath)
	if err != nil {
		return
	}
	fmt.Fprintf(output, "Template configuration written to '%s'\n", configFilePath)
	return
}
