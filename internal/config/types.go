package config

import (
	"csvcot/internal/track"
	"time"
)

// On-disk layout, YAML or JSON
type FileConfig struct {
	Target struct {
		Address         string `yaml:"address" json:"address" validate:"omitempty,hostname_rfc1123|ip"`
		Port            int    `yaml:"port" json:"port" validate:"gte=0,lte=65535"`
		SendBufferBytes int    `yaml:"sendBufferBytes,omitempty" json:"sendBufferBytes,omitempty" validate:"gte=0"`
		MulticastTTL    int    `yaml:"multicastTTL,omitempty" json:"multicastTTL,omitempty" validate:"gte=0,lte=255"`
	} `yaml:"target" json:"target"`
	Files           []string `yaml:"files" json:"files" validate:"dive,required"`
	PollingInterval string   `yaml:"pollingInterval" json:"pollingInterval"`
	RemovalGap      string   `yaml:"removalGap,omitempty" json:"removalGap,omitempty"`
	StaleWindow     string   `yaml:"staleWindow,omitempty" json:"staleWindow,omitempty"`
	MaxFileBytes    int64    `yaml:"maxFileBytes" json:"maxFileBytes" validate:"gte=0"`
	Cot             struct {
		PositionType string `yaml:"positionType" json:"positionType" validate:"omitempty,printascii"`
		RemovalType  string `yaml:"removalType" json:"removalType" validate:"omitempty,printascii"`
		CallsignBase string `yaml:"callsignBase" json:"callsignBase"`
	} `yaml:"cot" json:"cot"`
	Aliases map[string][]string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Metrics struct {
		Enabled         bool   `yaml:"enabled" json:"enabled"`
		Interval        string `yaml:"interval" json:"interval"`
		Retention       string `yaml:"retention" json:"retention"`
		QueryServer     bool   `yaml:"queryServer" json:"queryServer"`
		QueryServerPort int    `yaml:"queryServerPort" json:"queryServerPort" validate:"gte=0,lte=65535"`
	} `yaml:"metrics" json:"metrics"`
}

// Runtime configuration for the playback daemon
type Config struct {
	// Destination
	TargetAddress   string
	TargetPort      int
	SendBufferBytes int
	MulticastTTL    int

	// Sources
	Files        []string
	MaxFileBytes int64

	// Timing
	PollingInterval time.Duration
	RemovalGap      time.Duration
	StaleWindow     time.Duration

	// Events
	PositionType string
	RemovalType  string
	CallsignBase string
	Aliases      track.AliasSet

	// Metrics
	MetricsEnabled           bool
	MetricCollectionInterval time.Duration
	MetricMaxAge             time.Duration
	MetricQueryServerEnabled bool
	MetricQueryServerPort    int
}
