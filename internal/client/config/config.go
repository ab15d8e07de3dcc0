package config

import (
	"os"
	"strings"
	"time"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/common"
)

// Config holds runtime settings for the Tutor Stack CLI.
type Config struct {
	// APIBaseURL is prefixed to every request path. No trailing slash.
	APIBaseURL string `env:"TUTOR_API_BASE_URL"`
	// DBPath is the SQLite file holding the persisted session.
	DBPath string `env:"TUTOR_DB_PATH"`
	// OnlineCheckInterval is how often the REPL probes /health.
	OnlineCheckInterval time.Duration `env:"TUTOR_ONLINE_CHECK_INTERVAL"`
	LogLevel            string        `env:"TUTOR_LOG_LEVEL"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = common.DefaultAPIBaseURL
	c.DBPath = "tutor.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig builds a Config from defaults, the JSON file, the environment and
// the process arguments, in that order.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg
}
