package config

// Key describes one configuration key.
type Key struct {
	Name    string
	Default string
	// Doc is written above the key in the sample config file.
	Doc string
	// Check normalizes a non-empty value. A nil Check accepts anything.
	Check Validator
	// Derived keys are computed from state_dir when empty and are left out
	// of the sample config.
	Derived bool
}

var logLevels = []string{"debug", "info", "warn", "error"}

// keys lists every known key in the order the sample config presents them.
var keys = []Key{
	{Name: "config_dir", Doc: "Directory holding config.toml.", Derived: true},
	{Name: "state_dir", Doc: "Directory for the index, default file drop and logs.", Derived: true},
	{Name: "db_path", Doc: "SQLite index file. Defaults to {state_dir}/railsql.db.", Derived: true},
	{Name: "ach_dirs", Doc: "Directories scanned for ACH files. Defaults to {state_dir}/files.", Derived: true},

	{Name: "listen_addr", Default: ":8200", Doc: "Address railsql serve listens on."},
	{Name: "base_path", Default: "/", Doc: "Path prefix the web console is mounted under.", Check: basePath},
	{Name: "server_url", Default: "http://localhost:8200", Doc: "Backend the console and search --remote send queries to.", Check: httpURL},
	{Name: "cors_allowed_origins", Doc: "Comma separated origins allowed to call the API. Empty disables CORS."},
	{Name: "default_window_days", Default: "7", Doc: "Length of the window used when the address has no valid dates.", Check: positiveInt},
	{Name: "search_timeout", Default: "30s", Doc: "How long a dispatched search may take.", Check: duration},
	{Name: "escape_cells", Default: "false", Doc: "Escape result cells on the web page instead of rendering them as markup.", Check: boolean},
	{Name: "mask_account_numbers", Default: "false", Doc: "Keep only the last four digits of account numbers when indexing.", Check: boolean},
	{Name: "background_ingest", Default: "true", Doc: "Index the default window when the server starts.", Check: boolean},

	{Name: "logging_enabled", Default: "false", Doc: "Write structured JSON logs.", Check: boolean},
	{Name: "logging_level", Default: "info", Doc: "One of debug, info, warn, error.", Check: oneOf(logLevels...)},
	{Name: "logging_max_files", Default: "10", Doc: "Log files kept under {state_dir}/logs.", Check: positiveInt},
	{Name: "logging_output", Default: "file", Doc: "file or stderr.", Check: oneOf("file", "stderr")},
	{Name: "debug", Default: "false", Doc: "Verbose console output; forces logging_level to debug.", Check: boolean},
	{Name: "quiet", Default: "false", Doc: "Only print errors.", Check: boolean},
}

func lookup(name string) (Key, bool) {
	for _, k := range keys {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}
