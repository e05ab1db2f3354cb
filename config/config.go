package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string `json:"apiBaseUrl"`
	APIToken       string `json:"apiToken,omitempty"`
	CacheDBPath    string `json:"cacheDbPath"`
	PageSize       int    `json:"pageSize"`
	DebounceMillis int    `json:"debounceMillis"`
	WeekStart      string `json:"weekStart"`
	BusyMode       string `json:"busyMode"`
	LogTarget      string `json:"logTarget"`
	LogLevel       string `json:"logLevel"`
	Timezone       string `json:"timezone"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./ecadmin_config.json"

// 環境変数は設定ファイルの値より優先します。
const (
	EnvAPIURL   = "ECADMIN_API_URL"
	EnvAPIToken = "ECADMIN_API_TOKEN"
	EnvCacheDB  = "ECADMIN_CACHE_DB"
)

func defaults() Config {
	return Config{
		CacheDBPath:    "./ecadmin.db",
		PageSize:       5,
		DebounceMillis: 500,
		WeekStart:      "monday",
		BusyMode:       "counted",
		LogTarget:      "stderr",
		LogLevel:       "info",
		Timezone:       "UTC",
	}
}

func fillDefaults(c *Config) {
	d := defaults()
	if c.CacheDBPath == "" {
		c.CacheDBPath = d.CacheDBPath
	}
	if c.PageSize <= 0 {
		c.PageSize = d.PageSize
	}
	if c.DebounceMillis <= 0 {
		c.DebounceMillis = d.DebounceMillis
	}
	if c.WeekStart == "" {
		c.WeekStart = d.WeekStart
	}
	if c.BusyMode == "" {
		c.BusyMode = d.BusyMode
	}
	if c.LogTarget == "" {
		c.LogTarget = d.LogTarget
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
}

func applyEnv(c *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv(EnvCacheDB); v != "" {
		c.CacheDBPath = v
	}
}

// LoadConfig は ./ecadmin_config.json と .env を読み込みます。
func LoadConfig() (Config, error) {
	return LoadConfigFrom(configFilePath)
}

// LoadConfigFrom reads the config file at path. A missing file yields defaults.
// A .env file in the working directory is loaded first when present.
func LoadConfigFrom(path string) (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var tempCfg Config
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(file, &tempCfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	fillDefaults(&tempCfg)
	applyEnv(&tempCfg)
	cfg = tempCfg
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	return SaveConfigTo(configFilePath, newCfg)
}

// SaveConfigTo writes newCfg to path. The API token is not written.
func SaveConfigTo(path string, newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	fillDefaults(&newCfg)
	onDisk := newCfg
	onDisk.APIToken = ""

	file, err := json.MarshalIndent(onDisk, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, file, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Location は集計に使うタイムゾーンです。
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "UTC") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// WeekStartDay は週の開始曜日です。
func (c Config) WeekStartDay() (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(c.WeekStart))
	if name == "" {
		return time.Monday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("unknown week start %q", c.WeekStart)
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}
