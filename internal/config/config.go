package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultURLsFile   = "saved_urls.txt"
	defaultFeedSuffix = "/feed"
	defaultLogLevel   = "warn"
)

const (
	configFolderName  = "rssfeed"
	configFileName    = "config.toml"
	configPathEnvName = "XDG_CONFIG_HOME"
)

type Config struct {
	URLsFile   string
	FeedSuffix string
	OutputFile string
	// HTTPTimeout of zero keeps the platform default.
	HTTPTimeout time.Duration
	UserAgent   string
	LogLevel    string
	LogFile     string
}

func Default() Config {
	return Config{
		URLsFile:   defaultURLsFile,
		FeedSuffix: defaultFeedSuffix,
		LogLevel:   defaultLogLevel,
	}
}

func LoadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	configPath, hasConfig, err := findConfigPath(home)
	if err != nil {
		return Config{}, err
	}
	if hasConfig {
		fileCfg, err := loadFileConfig(configPath)
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&cfg, fileCfg)
	}

	applyEnvOverrides(&cfg)

	if cfg.HTTPTimeout < 0 {
		cfg.HTTPTimeout = 0
	}
	return cfg, nil
}

type fileConfig struct {
	URLsFile           *string `toml:"urls_file"`
	FeedSuffix         *string `toml:"feed_suffix"`
	OutputFile         *string `toml:"output_file"`
	HTTPTimeoutSeconds *int    `toml:"http_timeout_seconds"`
	UserAgent          *string `toml:"user_agent"`
	LogLevel           *string `toml:"log_level"`
	LogFile            *string `toml:"log_file"`
}

func findConfigPath(home string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if xdgConfigHome := strings.TrimSpace(os.Getenv(configPathEnvName)); xdgConfigHome != "" {
		candidates = append(candidates, filepath.Join(xdgConfigHome, configFolderName, configFileName))
	}
	candidates = append(candidates, filepath.Join(home, ".config", configFolderName, configFileName))

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf("config path %q is a directory; expected a file", candidate)
			}
			return candidate, true, nil
		}
		if os.IsNotExist(err) {
			continue
		}
		return "", false, fmt.Errorf("failed to read config path %q: %w", candidate, err)
	}
	return "", false, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		sort.Strings(unknown)
		return fileConfig{}, fmt.Errorf("invalid config file %q: unknown key(s): %s", path, strings.Join(unknown, ", "))
	}
	if err := validateFileConfig(path, cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

func validateFileConfig(path string, cfg fileConfig) error {
	if cfg.URLsFile != nil && strings.TrimSpace(*cfg.URLsFile) == "" {
		return fmt.Errorf("invalid config file %q: urls_file must be non-empty when provided", path)
	}
	if cfg.HTTPTimeoutSeconds != nil && *cfg.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("invalid config file %q: http_timeout_seconds must be >= 0", path)
	}
	if cfg.LogLevel != nil && !ValidLogLevel(*cfg.LogLevel) {
		return fmt.Errorf("invalid config file %q: log_level must be one of debug, info, warn, error", path)
	}
	return nil
}

// ValidLogLevel accepts the levels understood by the logger package.
func ValidLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func applyFileConfig(cfg *Config, fileCfg fileConfig) {
	if fileCfg.URLsFile != nil {
		cfg.URLsFile = *fileCfg.URLsFile
	}
	if fileCfg.FeedSuffix != nil {
		cfg.FeedSuffix = *fileCfg.FeedSuffix
	}
	if fileCfg.OutputFile != nil {
		cfg.OutputFile = *fileCfg.OutputFile
	}
	if fileCfg.HTTPTimeoutSeconds != nil {
		cfg.HTTPTimeout = time.Duration(*fileCfg.HTTPTimeoutSeconds) * time.Second
	}
	if fileCfg.UserAgent != nil {
		cfg.UserAgent = *fileCfg.UserAgent
	}
	if fileCfg.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*fileCfg.LogLevel))
	}
	if fileCfg.LogFile != nil {
		cfg.LogFile = *fileCfg.LogFile
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("RSSFEED_URLS_FILE"); ok && v != "" {
		cfg.URLsFile = v
	}
	if v, ok := os.LookupEnv("RSSFEED_FEED_SUFFIX"); ok && v != "" {
		cfg.FeedSuffix = v
	}
	if v, ok := os.LookupEnv("RSSFEED_OUTPUT_FILE"); ok && v != "" {
		cfg.OutputFile = v
	}
	if v, ok := os.LookupEnv("RSSFEED_HTTP_TIMEOUT_SECONDS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
	if v, ok := os.LookupEnv("RSSFEED_USER_AGENT"); ok && v != "" {
		cfg.UserAgent = v
	}
	if v, ok := os.LookupEnv("RSSFEED_LOG_LEVEL"); ok && ValidLogLevel(v) {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv("RSSFEED_LOG_FILE"); ok && v != "" {
		cfg.LogFile = v
	}
}
