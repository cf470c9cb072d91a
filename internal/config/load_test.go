package config

import (
	"csvcot/internal/global"
	"csvcot/internal/track"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "csvcot.yaml", `
target:
  address: 239.2.3.1
  port: 6969
  multicastTTL: 4
files:
  - a.csv
  - b.csv
pollingInterval: "2.5"
removalGap: 250ms
cot:
  callsignBase: UNIT
aliases:
  lat: [y]
  lon: [x]
metrics:
  enabled: true
  interval: 1s
`)

	fileCfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	cfg, err := fileCfg.NewConfig()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if cfg.TargetEndpoint() != "239.2.3.1:6969" {
		t.Errorf("expected endpoint 239.2.3.1:6969, got %s", cfg.TargetEndpoint())
	}
	if cfg.MulticastTTL != 4 {
		t.Errorf("expected ttl 4, got %d", cfg.MulticastTTL)
	}
	if cfg.PollingInterval != 2500*time.Millisecond {
		t.Errorf("expected 2.5s interval, got %v", cfg.PollingInterval)
	}
	if cfg.RemovalGap != 250*time.Millisecond {
		t.Errorf("expected 250ms removal gap, got %v", cfg.RemovalGap)
	}
	if cfg.StaleWindow != global.DefaultStaleWindow {
		t.Errorf("expected default stale window, got %v", cfg.StaleWindow)
	}
	if cfg.DefaultCallsign(1) != "UNIT2" {
		t.Errorf("expected UNIT2, got %s", cfg.DefaultCallsign(1))
	}
	if got := cfg.Aliases[track.RoleLat]; len(got) != 1 || got[0] != "y" {
		t.Errorf("expected lat alias override, got %v", got)
	}
	if got := cfg.Aliases[track.RoleAlt]; len(got) == 0 {
		t.Errorf("expected default alt aliases to survive")
	}
	if !cfg.MetricsEnabled || cfg.MetricCollectionInterval != time.Second {
		t.Errorf("unexpected metric settings: %v %v", cfg.MetricsEnabled, cfg.MetricCollectionInterval)
	}
	if cfg.MetricMaxAge != global.DefaultMetricRetention {
		t.Errorf("expected default retention, got %v", cfg.MetricMaxAge)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "csvcot.json", `{
	"target": {"address": "localhost", "port": 4343},
	"files": ["only.csv"],
	"pollingInterval": "10s"
}`)

	fileCfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	cfg, err := fileCfg.NewConfig()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cfg.TargetEndpoint() != "localhost:4343" {
		t.Errorf("unexpected endpoint %s", cfg.TargetEndpoint())
	}
	if len(cfg.Files) != 1 || cfg.DefaultCallsign(0) != "TMIT1" {
		t.Errorf("unexpected files %v / callsign %s", cfg.Files, cfg.DefaultCallsign(0))
	}
	if cfg.PollingInterval != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.PollingInterval)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		parseErr bool
	}{
		{
			name:    "bad syntax",
			file:    "bad.yaml",
			content: "target: [unclosed",
		},
		{
			name:    "port out of range",
			file:    "port.yaml",
			content: "target:\n  port: 70000\n",
		},
		{
			name:    "empty file entry",
			file:    "files.yaml",
			content: "files: [\"a.csv\", \"\"]\n",
		},
		{
			name:     "unparsable interval",
			file:     "interval.yaml",
			content:  "pollingInterval: soon\n",
			parseErr: true,
		},
		{
			name:     "unknown alias role",
			file:     "alias.yaml",
			content:  "aliases:\n  depth: [d]\n",
			parseErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			fileCfg, err := Load(path)
			if !tt.parseErr {
				if err == nil {
					t.Fatalf("expected load error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected load error: %v", err)
			}
			_, err = fileCfg.NewConfig()
			if err == nil {
				t.Fatalf("expected parse error, got nil")
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.TargetEndpoint() != "127.0.0.1:4242" {
		t.Errorf("unexpected default endpoint %s", cfg.TargetEndpoint())
	}
	if len(cfg.Files) != 3 || cfg.Files[2] != "targets2.csv" {
		t.Errorf("unexpected default files %v", cfg.Files)
	}
	if cfg.PollingInterval != 5*time.Second {
		t.Errorf("unexpected default interval %v", cfg.PollingInterval)
	}
	if cfg.MaxFileBytes <= 0 || cfg.MaxFileBytes > global.MaxAutoFileBytes {
		t.Errorf("max file bytes out of range: %d", cfg.MaxFileBytes)
	}
	if cfg.DefaultCallsign(0) != "TMIT1" || cfg.DefaultCallsign(2) != "TMIT3" {
		t.Errorf("unexpected default callsigns")
	}
	if cfg.DefaultCallsign(7) != "TMIT" {
		t.Errorf("out of range index should use bare base, got %s", cfg.DefaultCallsign(7))
	}
}

func TestAutoFileLimit(t *testing.T) {
	tests := []struct {
		name   string
		memory uint64
		expect int64
	}{
		{"unknown memory", 0, global.MaxAutoFileBytes},
		{"small host", 1 << 30, 1 << 26},
		{"large host", 1 << 40, global.MaxAutoFileBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := autoFileLimit(tt.memory); got != tt.expect {
				t.Errorf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input     string
		expect    time.Duration
		expectErr bool
	}{
		{"", 0, false},
		{"5s", 5 * time.Second, false},
		{" 1m30s ", 90 * time.Second, false},
		{"0.5", 500 * time.Millisecond, false},
		{"3", 3 * time.Second, false},
		{"later", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDuration(tt.input)
		if tt.expectErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.expect {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.expect, got)
		}
	}
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.yaml")
	if err := WriteTemplate(path); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	fileCfg, err := Load(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	cfg, err := fileCfg.NewConfig()
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}

	def := Default()
	if cfg.TargetEndpoint() != def.TargetEndpoint() {
		t.Errorf("endpoint mismatch: %s vs %s", cfg.TargetEndpoint(), def.TargetEndpoint())
	}
	if cfg.PollingInterval != def.PollingInterval || cfg.StaleWindow != def.StaleWindow {
		t.Errorf("timing mismatch: %v/%v", cfg.PollingInterval, cfg.StaleWindow)
	}
	if len(cfg.Aliases[track.RoleCallsign]) != len(def.Aliases[track.RoleCallsign]) {
		t.Errorf("alias mismatch")
	}

	if err := WriteTemplate(""); err == nil {
		t.Errorf("expected error for empty path")
	}
}
