// ABOUTME: Runtime configuration for the recorder
// ABOUTME: Environment defaults overridden by command-line flags
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/harperreed/monorec/pkg/audio/wavfile"
)

// Config holds the runtime settings. Audio parameters are fixed constants
// in the capture package and are not part of it.
type Config struct {
	OutputPath string
	Backend    string
	LogFile    string
	NoTUI      bool
	Debug      bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		OutputPath: envStr("MONOREC_OUT", wavfile.DefaultPath),
		Backend:    envStr("MONOREC_BACKEND", "malgo"),
		LogFile:    envStr("MONOREC_LOG_FILE", "monorec.log"),
		NoTUI:      envBool("MONOREC_NO_TUI", false),
		Debug:      envBool("MONOREC_DEBUG", false),
	}
}

// Parse applies command-line flags on top of the environment defaults
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Load()

	fs.StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "Output WAV file path")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Capture backend (malgo, portaudio)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path")
	fs.BoolVar(&cfg.NoTUI, "no-tui", cfg.NoTUI, "Disable TUI, use streaming logs instead")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.OutputPath == "" {
		return Config{}, fmt.Errorf("output path must not be empty")
	}
	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
