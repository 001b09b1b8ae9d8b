// Package config provides configuration loading.
//
// Values are resolved in this order, later sources winning:
// built-in defaults, the TOML config file, RAILSQL_* environment variables.
// All values are kept as strings and converted by the typed getters.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/railsql/internal/colors"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "RAILSQL_"
	// EnvConfigPath points at an explicit config file.
	EnvConfigPath = EnvPrefix + "CONFIG_PATH"

	fileName = "config.toml"
)

var (
	mu     sync.RWMutex
	values map[string]string
)

// Load resolves configuration from defaults, the config file and the
// environment, then writes a documented sample file if none exists.
func Load() {
	mu.Lock()
	defer mu.Unlock()

	values = make(map[string]string, len(keys))
	for _, k := range keys {
		values[k.Name] = k.Default
	}
	dirDefaults()

	env := fromEnv()
	overlay(env)
	overlay(fromFile(configPath()))
	overlay(env)

	normalize()
	deriveDirs()
	writeSample()
}

// reset clears loaded state. Used by tests.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	values = nil
}

func dirDefaults() {
	home, _ := os.UserHomeDir()
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}
	values["config_dir"] = filepath.Join(configHome, "railsql")
	values["state_dir"] = filepath.Join(stateHome, "railsql")
}

func overlay(src map[string]string) {
	for k, v := range src {
		values[k] = v
	}
}

func fromEnv() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) || name == EnvConfigPath {
			continue
		}
		out[strings.ToLower(strings.TrimPrefix(name, EnvPrefix))] = value
	}
	return out
}

// configPath is RAILSQL_CONFIG_PATH, or config.toml in config_dir when it
// exists. It must be called after environment overrides of config_dir.
func configPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	p := filepath.Join(values["config_dir"], fileName)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func fromFile(path string) map[string]string {
	if path == "" {
		return nil
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".toml" {
		colors.Warning(fmt.Sprintf("config file %s: unsupported format %q", path, ext))
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		colors.Debug(fmt.Sprintf("config file %s: %v", path, err))
		return nil
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		colors.Warning(fmt.Sprintf("config file %s: %v", path, err))
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		key := strings.ToLower(k)
		s, ok := coerceConfigValue(v)
		if !ok {
			colors.Warning(fmt.Sprintf("config file %s: unsupported value type for %s: %T", path, key, v))
			continue
		}
		out[key] = s
	}
	return out
}

// coerceConfigValue flattens a TOML value to a string. Arrays of scalars are
// joined with commas, which is how GetList reads list keys back.
func coerceConfigValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := coerceConfigValue(item)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), true
	}
	return "", false
}

// normalize runs each key's check. Empty and invalid values fall back to
// the key's default; invalid ones are reported.
func normalize() {
	for name, value := range values {
		k, ok := lookup(name)
		if !ok || k.Check == nil {
			continue
		}
		if strings.TrimSpace(value) == "" {
			values[name] = k.Default
			continue
		}
		normalized, err := k.Check(value)
		if err != nil {
			colors.Warning(fmt.Sprintf("invalid %s %q: %v; using %q", name, value, err, k.Default))
			normalized = k.Default
		}
		values[name] = normalized
	}
}

func deriveDirs() {
	stateDir := values["state_dir"]
	if stateDir == "" {
		return
	}
	if values["db_path"] == "" {
		values["db_path"] = filepath.Join(stateDir, "railsql.db")
	}
	if values["ach_dirs"] == "" {
		values["ach_dirs"] = filepath.Join(stateDir, "files")
	}
}

// writeSample creates config_dir/config.toml listing every settable key
// with its default and a comment.
func writeSample() {
	dir := values["config_dir"]
	if dir == "" {
		return
	}
	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); err == nil {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		colors.Debug(fmt.Sprintf("unable to create config dir %s: %v", dir, err))
		return
	}
	data, err := sample()
	if err != nil {
		colors.Warning(fmt.Sprintf("unable to build sample config: %v", err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		colors.Warning(fmt.Sprintf("unable to write sample config to %s: %v", path, err))
	}
}

func sample() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# railsql configuration\n")
	buf.WriteString("# Environment variables prefixed with " + EnvPrefix + " override these values.\n")
	for _, k := range keys {
		if k.Derived {
			continue
		}
		line, err := toml.Marshal(map[string]any{k.Name: typed(k.Default)})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k.Name, err)
		}
		fmt.Fprintf(&buf, "\n# %s\n", k.Doc)
		if k.Default == "" {
			buf.WriteString("# ")
		}
		buf.Write(line)
	}
	return buf.Bytes(), nil
}

func typed(val string) any {
	if n, err := strconv.Atoi(val); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return val
}

// Get returns a configuration value or default.
func Get(key, defaultValue string) string {
	mu.RLock()
	defer mu.RUnlock()
	if val, ok := values[key]; ok {
		return val
	}
	return defaultValue
}

// GetInt returns a configuration value as integer, or default.
func GetInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBool returns a configuration value as boolean, or default.
func GetBool(key string, defaultValue bool) bool {
	b, err := boolean(Get(key, ""))
	if err != nil {
		return defaultValue
	}
	return b == "true"
}

// GetDuration returns a configuration value as a duration, or default.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(Get(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

// GetList splits a comma-separated value, dropping blanks.
func GetList(key string) []string {
	var out []string
	for _, part := range strings.Split(Get(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
