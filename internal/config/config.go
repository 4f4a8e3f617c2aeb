package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cheeselab/cheesequiz/internal/quiz"
)

// EnvPrefix is prepended to every environment variable, e.g. CHEESEQUIZ_EXAM_KEY.
const EnvPrefix = "CHEESEQUIZ"

// Keys shared by flags, env vars and the config file.
const (
	KeyEndpoint     = "endpoint"
	KeyExamKey      = "exam-key"
	KeyPeriod       = "period"
	KeyTopic        = "topic"
	KeyDifficulty   = "difficulty"
	KeyLimit        = "limit"
	KeyFetchTimeout = "fetch-timeout"
	KeyLogEndpoint  = "log-endpoint"
	KeyDB           = "db"
	KeyLogLevel     = "log-level"
	KeyLogFile      = "log-file"
	KeyAddr         = "addr"
	KeyBank         = "bank"
	KeyCORSOrigins  = "cors-origins"
)

var dashedKeys = []string{
	KeyExamKey, KeyFetchTimeout, KeyLogEndpoint, KeyLogLevel, KeyLogFile, KeyCORSOrigins,
}

// Config holds all application configuration.
type Config struct {
	Quiz quiz.Config

	// FetchTimeout bounds a single question request. Default: 15s.
	FetchTimeout time.Duration

	// LogEndpoint, when set, receives answer logs over HTTP instead of the
	// local database.
	LogEndpoint string

	// DBPath is the SQLite answer log. Empty means store.DefaultDBPath.
	DBPath string

	LogLevel string
	LogFile  string

	Server ServerConfig
}

// ServerConfig configures `cheesequiz serve`.
type ServerConfig struct {
	Addr        string
	BankPath    string // empty means the embedded sample bank
	CORSOrigins []string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Quiz: quiz.Config{
			Endpoint: quiz.DefaultEndpoint,
			Limit:    quiz.DefaultLimit,
		},
		FetchTimeout: 15 * time.Second,
		LogLevel:     "info",
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
	}
}

// Load merges, from lowest to highest priority: defaults, the optional
// cheesequiz.{yaml,toml,json} config file, CHEESEQUIZ_* environment
// variables and explicitly set flags. flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	def := Default()

	v.SetDefault(KeyEndpoint, def.Quiz.Endpoint)
	v.SetDefault(KeyLimit, def.Quiz.Limit)
	v.SetDefault(KeyFetchTimeout, def.FetchTimeout)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyAddr, def.Server.Addr)
	v.SetDefault(KeyCORSOrigins, strings.Join(def.Server.CORSOrigins, ","))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("cheesequiz")
	v.AddConfigPath(".")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	// Config files may spell keys with underscores (fetch_timeout). Aliases
	// must be registered after the file is read to move its values over.
	for _, k := range dashedKeys {
		v.RegisterAlias(strings.ReplaceAll(k, "-", "_"), k)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := Config{
		Quiz: quiz.Config{
			ExamKey:    v.GetString(KeyExamKey),
			Period:     v.GetString(KeyPeriod),
			Topic:      v.GetString(KeyTopic),
			Difficulty: v.GetString(KeyDifficulty),
			Limit:      v.GetInt(KeyLimit),
			Endpoint:   v.GetString(KeyEndpoint),
		},
		FetchTimeout: v.GetDuration(KeyFetchTimeout),
		LogEndpoint:  v.GetString(KeyLogEndpoint),
		DBPath:       v.GetString(KeyDB),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFile:      v.GetString(KeyLogFile),
		Server: ServerConfig{
			Addr:        v.GetString(KeyAddr),
			BankPath:    v.GetString(KeyBank),
			CORSOrigins: splitCSV(v.GetString(KeyCORSOrigins)),
		},
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges that cannot be expressed as flag types.
func (c Config) Validate() error {
	if c.Quiz.Limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", c.Quiz.Limit)
	}
	if c.Quiz.Endpoint == "" {
		return errors.New("endpoint must not be empty")
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch-timeout must not be negative, got %s", c.FetchTimeout)
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/cheesequiz or ~/.config/cheesequiz.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "cheesequiz"), nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
