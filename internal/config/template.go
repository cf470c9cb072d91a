package config

import (
	"csvcot/internal/global"
	"csvcot/internal/track"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Writes a YAML config populated with the defaults to path
func WriteTemplate(path string) (err error) {
	if path == "" {
		err = fmt.Errorf("specify template file path via the --config-template argument")
		return
	}

	var newCfg FileConfig
	newCfg.Target.Address = global.DefaultTargetAddress
	newCfg.Target.Port = global.DefaultTargetPort
	newCfg.Target.MulticastTTL = global.DefaultMulticastTTL

	newCfg.Files = append([]string(nil), DefaultFiles...)
	newCfg.PollingInterval = global.DefaultPollingInterval.String()
	newCfg.RemovalGap = global.DefaultRemovalGap.String()
	newCfg.StaleWindow = global.DefaultStaleWindow.String()

	newCfg.Cot.PositionType = global.DefaultPositionType
	newCfg.Cot.RemovalType = global.DefaultRemovalType
	newCfg.Cot.CallsignBase = global.DefaultCallsignBase

	newCfg.Aliases = make(map[string][]string)
	for role, aliases := range track.DefaultAliases() {
		newCfg.Aliases[string(role)] = aliases
	}

	newCfg.Metrics.Interval = global.DefaultMetricInterval.String()
	newCfg.Metrics.Retention = global.DefaultMetricRetention.String()
	newCfg.Metrics.QueryServerPort = global.HTTPListenPort

	confBytes, err := yaml.Marshal(newCfg)
	if err != nil {
		err = fmt.Errorf("error marshaling new config: %w", err)
		return
	}

	err = os.WriteFile(path, confBytes, 0600)
	if err != nil {
		err = fmt.Errorf("failed to write config to file: %w", err)
		return
	}
	return
}
