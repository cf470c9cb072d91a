package config

import (
	"csvcot/internal/global"
	"csvcot/internal/track"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pbnjay/memory"
	"gopkg.in/yaml.v3"
)

var DefaultFiles = []string{"targets.csv", "targets1.csv", "targets2.csv"}

// Loads config from file. Files ending in .json are parsed as JSON, anything else as YAML.
func Load(path string) (cfg FileConfig, err error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %w", err)
		return
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(configFile, &cfg)
	} else {
		err = yaml.Unmarshal(configFile, &cfg)
	}
	if err != nil {
		err = fmt.Errorf("invalid config syntax in '%s': %w", path, err)
		return
	}

	err = validator.New().Struct(cfg)
	if err != nil {
		err = fmt.Errorf("invalid config values in '%s': %w", path, err)
		return
	}
	return
}

// Parses file config into runtime config. Missing values receive defaults.
func (cfg FileConfig) NewConfig() (config Config, err error) {
	// Destination
	config.TargetAddress = cfg.Target.Address
	config.TargetPort = cfg.Target.Port
	config.SendBufferBytes = cfg.Target.SendBufferBytes
	config.MulticastTTL = cfg.Target.MulticastTTL

	// Sources
	config.Files = append([]string(nil), cfg.Files...)
	config.MaxFileBytes = cfg.MaxFileBytes

	// Timing
	config.PollingInterval, err = parseDuration(cfg.PollingInterval)
	if err != nil {
		err = fmt.Errorf("failed to parse polling interval: %w", err)
		return
	}
	config.RemovalGap, err = parseDuration(cfg.RemovalGap)
	if err != nil {
		err = fmt.Errorf("failed to parse removal gap: %w", err)
		return
	}
	config.StaleWindow, err = parseDuration(cfg.StaleWindow)
	if err != nil {
		err = fmt.Errorf("failed to parse stale window: %w", err)
		return
	}

	// Events
	config.PositionType = cfg.Cot.PositionType
	config.RemovalType = cfg.Cot.RemovalType
	config.CallsignBase = cfg.Cot.CallsignBase
	config.Aliases, err = track.MergeAliases(cfg.Aliases)
	if err != nil {
		err = fmt.Errorf("failed to parse column aliases: %w", err)
		return
	}

	// Metrics
	config.MetricsEnabled = cfg.Metrics.Enabled
	config.MetricQueryServerEnabled = cfg.Metrics.QueryServer
	config.MetricQueryServerPort = cfg.Metrics.QueryServerPort
	config.MetricCollectionInterval, err = parseDuration(cfg.Metrics.Interval)
	if err != nil {
		err = fmt.Errorf("failed to parse metric collection interval: %w", err)
		return
	}
	config.MetricMaxAge, err = parseDuration(cfg.Metrics.Retention)
	if err != nil {
		err = fmt.Errorf("failed to parse metric retention: %w", err)
		return
	}

	config.SetDefaults()
	return
}

// Runtime config with only compiled-in values
func Default() (config Config) {
	config.SetDefaults()
	return
}

// Sets defaults for any missing/invalid values
func (cfg *Config) SetDefaults() {
	// Destination
	if cfg.TargetAddress == "" {
		cfg.TargetAddress = global.DefaultTargetAddress
	}
	if cfg.TargetPort == 0 {
		cfg.TargetPort = global.DefaultTargetPort
	}
	if cfg.MulticastTTL == 0 {
		cfg.MulticastTTL = global.DefaultMulticastTTL
	}

	// Sources
	if len(cfg.Files) == 0 {
		cfg.Files = append([]string(nil), DefaultFiles...)
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = autoFileLimit(memory.TotalMemory())
	}

	// Timing
	if cfg.PollingInterval <= 0 {
		cfg.PollingInterval = global.DefaultPollingInterval
	}
	if cfg.RemovalGap <= 0 {
		cfg.RemovalGap = global.DefaultRemovalGap
	}
	if cfg.StaleWindow <= 0 {
		cfg.StaleWindow = global.DefaultStaleWindow
	}

	// Events
	if cfg.PositionType == "" {
		cfg.PositionType = global.DefaultPositionType
	}
	if cfg.RemovalType == "" {
		cfg.RemovalType = global.DefaultRemovalType
	}
	if cfg.CallsignBase == "" {
		cfg.CallsignBase = global.DefaultCallsignBase
	}
	if cfg.Aliases == nil {
		cfg.Aliases = track.DefaultAliases()
	}

	// Metrics
	if cfg.MetricCollectionInterval <= 0 {
		cfg.MetricCollectionInterval = global.DefaultMetricInterval
	}
	if cfg.MetricMaxAge <= 0 {
		cfg.MetricMaxAge = global.DefaultMetricRetention
	}
	if cfg.MetricQueryServerPort == 0 {
		cfg.MetricQueryServerPort = global.HTTPListenPort
	}
}

// Destination in host:port form
func (cfg Config) TargetEndpoint() (endpoint string) {
	endpoint = net.JoinHostPort(cfg.TargetAddress, strconv.Itoa(cfg.TargetPort))
	return
}

// Callsign used for rows of the file at index (zero based) that carry none
func (cfg Config) DefaultCallsign(index int) (callsign string) {
	if index < 0 || index >= len(cfg.Files) {
		callsign = cfg.CallsignBase
		return
	}
	callsign = cfg.CallsignBase + strconv.Itoa(index+1)
	return
}

// One sixteenth of system memory, capped. Unknown memory size uses the cap.
func autoFileLimit(totalMemory uint64) (limit int64) {
	limit = global.MaxAutoFileBytes
	if totalMemory == 0 {
		return
	}
	share := totalMemory / 16
	if share < uint64(limit) {
		limit = int64(share)
	}
	return
}

// Accepts Go durations ("5s", "1m30s") and bare seconds ("2.5")
func parseDuration(value string) (duration time.Duration, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	duration, err = time.ParseDuration(value)
	if err == nil {
		return
	}

	seconds, numErr := strconv.ParseFloat(value, 64)
	if numErr != nil {
		return
	}
	duration = time.Duration(seconds * float64(time.Second))
	err = nil
	return
}
