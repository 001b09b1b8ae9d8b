package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/railsql/internal/config"
)

// Output destinations for structured logs.
const (
	OutputFile   = "file"
	OutputStderr = "stderr"
)

// Config holds logging configuration.
type Config struct {
	Enabled bool
	// Level is one of debug, info, warn or error.
	Level string
	// MaxFiles is how many railsql_*.log files survive a new run.
	MaxFiles int
	// Output is OutputFile or OutputStderr.
	Output  string
	Command string
}

// DefaultConfig returns logging disabled at info level.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		MaxFiles: 10,
		Output:   OutputFile,
		Command:  filepath.Base(os.Args[0]),
	}
}

// FromGlobalConfig reads the logging_* keys. debug and quiet override
// logging_level, debug winning when both are set.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", cfg.Level)
	cfg.MaxFiles = config.GetInt("logging_max_files", cfg.MaxFiles)
	cfg.Output = config.Get("logging_output", cfg.Output)
	if config.GetBool("debug", false) {
		cfg.Level = "debug"
	} else if config.GetBool("quiet", false) {
		cfg.Level = "error"
	}
	return cfg
}

// LogDir returns {state_dir}/logs, or a railsql/logs directory under the
// system temp dir when the state dir cannot be written.
func LogDir() (string, error) {
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		dir := filepath.Join(stateDir, "logs")
		if os.MkdirAll(dir, 0o700) == nil && writable(dir) {
			return dir, nil
		}
	}
	dir := filepath.Join(os.TempDir(), "railsql", "logs")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
