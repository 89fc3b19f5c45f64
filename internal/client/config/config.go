package config

// Config holds runtime settings for the devlog CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the journal API.
//   - SessionDB: path of the SQLite file holding the session.
//   - ExportDir: directory export files are written to.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL string `env:"API_BASE" json:"api_base_url" yaml:"api_base_url"`
	SessionDB  string `env:"SESSION_DB" json:"session_db" yaml:"session_db"`
	ExportDir  string `env:"EXPORT_DIR" json:"export_dir" yaml:"export_dir"`
	LogLevel   string `env:"LOG_LEVEL" json:"log_level" yaml:"log_level"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.SessionDB = "devlog.db"
	c.ExportDir = "exports"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// merge copies the non-empty fields of src into dst.
func merge(dst *Config, src Config) {
	if src.APIBaseURL != "" {
		dst.APIBaseURL = src.APIBaseURL
	}
	if src.SessionDB != "" {
		dst.SessionDB = src.SessionDB
	}
	if src.ExportDir != "" {
		dst.ExportDir = src.ExportDir
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}
