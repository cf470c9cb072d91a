package cli

import (
	"bytes"
	"context"
	"csvcot/internal/global"
	"csvcot/internal/logctx"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testContext(t *testing.T) (ctx context.Context, logger *logctx.Logger) {
	t.Helper()
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	logger = logctx.NewLogger(global.NSTest, global.VerbosityStandard, done)
	ctx = logctx.WithLogger(context.Background(), logger)
	return
}

func TestWriteHelpMenu(t *testing.T) {
	root := DefineOptions()

	tests := []struct {
		name     string
		command  string
		flags    func(fs *flag.FlagSet)
		contains []string
		excludes []string
	}{
		{
			name:    "root",
			command: RootCLICommand,
			flags:   SetGlobalArguments,
			contains: []string{
				"Usage: csvcot [subcommand] [options]\n",
				"Subcommands:\n",
				"    configure   - Setup Actions\n",
				"    run         - Play Track Files\n",
				"    version     - Show Version Information\n",
				"  -v, --verbosity  Increase detailed progress messages",
				"[default: 1]",
				"SIGUSR1 requests a jump",
			},
		},
		{
			name:    "run",
			command: "run",
			flags: func(fs *flag.FlagSet) {
				SetGlobalArguments(fs)
				var path string
				SetCommon(fs, &path)
			},
			contains: []string{
				"Usage: csvcot run [options] [interval-seconds]\n",
				"  Description:\n",
				"  -c, --config     Path to the YAML or JSON configuration file (optional)\n",
				"speed <seconds>",
			},
			excludes: []string{"Subcommands:"},
		},
		{
			name:    "configure long only flag",
			command: "configure",
			flags: func(fs *flag.FlagSet) {
				var path string
				fs.StringVar(&path, "config-template", "", "Write template")
			},
			contains: []string{"      --config-template  Write template\n"},
			excludes: []string{"Runtime commands"},
		},
		{
			name:     "unknown",
			command:  "bogus",
			flags:    func(fs *flag.FlagSet) {},
			contains: []string{"Unknown command: bogus\n"},
			excludes: []string{"Usage:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet(tt.command, flag.ContinueOnError)
			tt.flags(fs)

			var out bytes.Buffer
			writeHelpMenu(&out, "csvcot", fs, tt.command, root)

			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("help output missing %q:\n%s", want, out.String())
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out.String(), unwanted) {
					t.Errorf("help output unexpectedly contains %q:\n%s", unwanted, out.String())
				}
			}
		})
	}
}

func TestBuildConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "csvcot.yaml")
	content := "target:\n  address: 10.1.2.3\n  port: 6969\nfiles: [a.csv]\npollingInterval: 3s\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed writing config: %v", err)
	}

	tests := []struct {
		name         string
		configPath   string
		intervalArg  string
		wantInterval time.Duration
		wantEndpoint string
		wantLog      string
		expectError  bool
	}{
		{name: "defaults", wantInterval: global.DefaultPollingInterval, wantEndpoint: "127.0.0.1:4242"},
		{name: "positional interval", intervalArg: "0.5", wantInterval: 500 * time.Millisecond, wantEndpoint: "127.0.0.1:4242", wantLog: "Using command-line initial interval: 0.5 seconds.\n"},
		{name: "invalid positional interval", intervalArg: "-2", wantInterval: global.DefaultPollingInterval, wantEndpoint: "127.0.0.1:4242", wantLog: "[Warn] Error processing command-line argument: interval must be positive. Using default 5 seconds.\n"},
		{name: "config file", configPath: configPath, wantInterval: 3 * time.Second, wantEndpoint: "10.1.2.3:6969"},
		{name: "config file with positional", configPath: configPath, intervalArg: "7", wantInterval: 7 * time.Second, wantEndpoint: "10.1.2.3:6969"},
		{name: "invalid positional keeps file interval", configPath: configPath, intervalArg: "fast", wantInterval: 3 * time.Second, wantEndpoint: "10.1.2.3:6969", wantLog: "Using default 3 seconds.\n"},
		{name: "missing config file", configPath: filepath.Join(dir, "absent.yaml"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, logger := testContext(t)

			cfg, err := buildConfig(ctx, tt.configPath, tt.intervalArg)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.PollingInterval != tt.wantInterval {
				t.Errorf("interval=%v want=%v", cfg.PollingInterval, tt.wantInterval)
			}
			if got := cfg.TargetEndpoint(); got != tt.wantEndpoint {
				t.Errorf("endpoint=%s want=%s", got, tt.wantEndpoint)
			}

			lines := logger.GetFormattedLogLines()
			if tt.wantLog == "" {
				if len(lines) != 0 {
					t.Errorf("unexpected log output %q", lines)
				}
				return
			}
			if len(lines) != 1 || !strings.HasSuffix(lines[0], tt.wantLog) {
				t.Errorf("log=%q want suffix %q", lines, tt.wantLog)
			}
		})
	}
}
