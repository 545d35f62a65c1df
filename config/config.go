package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

// FileName is the configuration file looked up in the working and home directories.
const FileName = ".gitscrub.json"

// Config holds all configuration for gitscrub.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Repository RepositoryConfig `json:"repository"`
	History    HistoryConfig    `json:"history"`
	Filters    FilterConfig     `json:"filters"`
	Log        LogConfig        `json:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host                   string   `json:"host" env:"GITSCRUB_HOST"`
	Port                   int      `json:"port" env:"PORT"`
	BasePath               string   `json:"basePath" env:"GITSCRUB_BASE_PATH"`
	ReadTimeoutSeconds     int      `json:"readTimeoutSeconds"`
	IdleTimeoutSeconds     int      `json:"idleTimeoutSeconds"`
	ShutdownTimeoutSeconds int      `json:"shutdownTimeoutSeconds"`
	CORSOrigins            []string `json:"corsOrigins" env:"GITSCRUB_CORS_ORIGINS"`
	// MaxRepositories caps how many repositories the API keeps open at once.
	MaxRepositories int `json:"maxRepositories" env:"GITSCRUB_MAX_REPOS"`
}

// RepositoryConfig selects the repository analyzed when a request names none.
type RepositoryConfig struct {
	DefaultPath string `json:"defaultPath" env:"DEFAULT_REPO"`
}

// HistoryConfig tunes history extraction.
type HistoryConfig struct {
	StatWidth int `json:"statWidth"` // Column width passed to git show --stat
	Workers   int `json:"workers" env:"GITSCRUB_WORKERS"`
}

// FilterConfig holds include/exclude glob patterns applied to trees.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `json:"level" env:"GITSCRUB_LOG_LEVEL"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                   3000,
			BasePath:               "/api",
			ReadTimeoutSeconds:     30,
			IdleTimeoutSeconds:     120,
			ShutdownTimeoutSeconds: 10,
			CORSOrigins:            []string{"*"},
			MaxRepositories:        16,
		},
		Repository: RepositoryConfig{
			DefaultPath: ".",
		},
		History: HistoryConfig{
			StatWidth: 1000,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Log: LogConfig{
			Level: logze.LevelInfo,
		},
	}
}

// LoadConfig loads configuration from a file and the environment, merging with defaults.
// An empty path searches the working directory and then the home directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, errm.Wrap(err, "read config", "path", path)
	}

	cfg.Prepare()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, FileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Merge applies the non-zero fields of overrides on top of cfg.
func (cfg *Config) Merge(overrides Config) error {
	if err := mergo.Merge(cfg, overrides, mergo.WithOverride); err != nil {
		return errm.Wrap(err, "merge config overrides")
	}
	cfg.Prepare()
	return cfg.Validate()
}

// Prepare fills zero values with defaults.
func (cfg *Config) Prepare() {
	def := DefaultConfig()

	cfg.Server.Port = lang.Check(cfg.Server.Port, def.Server.Port)
	cfg.Server.BasePath = lang.Check(cfg.Server.BasePath, def.Server.BasePath)
	cfg.Server.ReadTimeoutSeconds = lang.Check(cfg.Server.ReadTimeoutSeconds, def.Server.ReadTimeoutSeconds)
	cfg.Server.IdleTimeoutSeconds = lang.Check(cfg.Server.IdleTimeoutSeconds, def.Server.IdleTimeoutSeconds)
	cfg.Server.ShutdownTimeoutSeconds = lang.Check(cfg.Server.ShutdownTimeoutSeconds, def.Server.ShutdownTimeoutSeconds)
	cfg.Server.MaxRepositories = lang.Check(cfg.Server.MaxRepositories, def.Server.MaxRepositories)
	cfg.Repository.DefaultPath = lang.Check(cfg.Repository.DefaultPath, def.Repository.DefaultPath)
	cfg.History.StatWidth = lang.Check(cfg.History.StatWidth, def.History.StatWidth)
	cfg.Log.Level = strings.ToLower(lang.Check(cfg.Log.Level, def.Log.Level))

	if cfg.Server.BasePath != "/" && !strings.HasPrefix(cfg.Server.BasePath, "/") {
		cfg.Server.BasePath = "/" + cfg.Server.BasePath
	}
	cfg.Server.BasePath = strings.TrimSuffix(cfg.Server.BasePath, "/")
}

// Validate reports the first invalid setting.
func (cfg *Config) Validate() error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return errm.New("invalid server port", "port", cfg.Server.Port)
	}
	if cfg.Server.MaxRepositories < 0 {
		return errm.New("max repositories must not be negative", "max_repositories", cfg.Server.MaxRepositories)
	}
	if cfg.History.Workers < 0 {
		return errm.New("workers must not be negative", "workers", cfg.History.Workers)
	}
	if cfg.History.StatWidth < 0 {
		return errm.New("stat width must not be negative", "stat_width", cfg.History.StatWidth)
	}
	for _, pattern := range append(append([]string{}, cfg.Filters.Include...), cfg.Filters.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errm.New("invalid filter pattern", "pattern", pattern)
		}
	}
	switch cfg.Log.Level {
	case logze.LevelTrace, logze.LevelDebug, logze.LevelInfo, logze.LevelWarn, logze.LevelError:
	default:
		return errm.New("unknown log level", "level", cfg.Log.Level)
	}
	return nil
}

// Address returns the host:port the server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ReadTimeout returns the request read timeout.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// IdleTimeout returns the keep-alive idle timeout.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns how long a graceful shutdown may take.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}
