package config

import (
    "errors"
    "fmt"
    "os"

    "github.com/caarlos0/env/v10"
    "gopkg.in/yaml.v3"
)

// Operating modes
const (
    ModeDefault     = "default"
    ModeLasercutter = "lasercutter"
)

// ErrInvalidMode is returned for unknown modes
var ErrInvalidMode = errors.New("invalid mode")

// Config represents the application configuration
type Config struct {
    Mode        string            `yaml:"mode" env:"LEDBOARD_MODE"` // default, lasercutter
    LedBoard    LedBoardConfig    `yaml:"ledboard"`
    MQTT        MQTTConfig        `yaml:"mqtt"`
    Ping        PingConfig        `yaml:"ping"`
    Performance PerformanceConfig `yaml:"performance"`
    Journal     JournalConfig     `yaml:"journal"`
    Logging     LoggingConfig     `yaml:"logging"`
    Metrics     MetricsConfig     `yaml:"metrics"`
}

// LedBoardConfig specifies where the board listens
type LedBoardConfig struct {
    Host string `yaml:"host" env:"LEDBOARD_HOST"`
    Port int    `yaml:"port"`
}

// MQTTConfig specifies the broker connection
type MQTTConfig struct {
    Host            string `yaml:"host" env:"LEDBOARD_MQTT_HOST"`
    Port            int    `yaml:"port" env:"LEDBOARD_MQTT_PORT"`
    ClientID        string `yaml:"client_id"`
    Username        string `yaml:"username" env:"LEDBOARD_MQTT_USERNAME"`
    Password        string `yaml:"password" env:"LEDBOARD_MQTT_PASSWORD"`
    KeepAliveSec    int    `yaml:"keepalive_sec"`
    ConnectRetrySec int    `yaml:"connect_retry_sec"` // give up connecting after N seconds (0 = single attempt)
}

// PingConfig controls the board liveness probe
type PingConfig struct {
    IntervalSec        int  `yaml:"interval_sec"`
    ConsecutiveAnswers int  `yaml:"consecutive_answers"` // answers in a row before the board counts as online
    Privileged         bool `yaml:"privileged"`          // raw ICMP sockets instead of unprivileged UDP ping
}

// PerformanceConfig for throttling what reaches the board
type PerformanceConfig struct {
    MaxScreensPerSec     int         `yaml:"max_screens_per_sec"`     // 0 = unlimited
    DropStatsIntervalSec int         `yaml:"drop_stats_interval_sec"` // Log drop stats every N seconds (0 = disabled)
    Dedup                DedupConfig `yaml:"dedup"`
}

// DedupConfig for suppressing repeated MQTT payloads
type DedupConfig struct {
    WindowMS int `yaml:"window_ms"` // 0 = disabled
    Size     int `yaml:"size"`
}

// JournalConfig specifies where sent datagrams are recorded
type JournalConfig struct {
    Type string            `yaml:"type"` // none, stdout, simple, file
    File FileJournalConfig `yaml:"file"`
}

// FileJournalConfig for file-based journal
type FileJournalConfig struct {
    Path       string `yaml:"path"`
    MaxSizeMB  int    `yaml:"max_size_mb"`
    MaxBackups int    `yaml:"max_backups"`
    MaxAgeDays int    `yaml:"max_age_days"`
    Compress   bool   `yaml:"compress"`
}

// LoggingConfig for daemon's own logging
type LoggingConfig struct {
    Level  string `yaml:"level"`  // debug, info, warn, error
    Output string `yaml:"output"` // stdout, stderr, file path
}

// MetricsConfig for Prometheus metrics
type MetricsConfig struct {
    Enabled bool `yaml:"enabled"` // Enable Prometheus metrics endpoint
    Port    int  `yaml:"port"`    // HTTP port for /metrics endpoint
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
    return &Config{
        Mode: ModeDefault,
        LedBoard: LedBoardConfig{
            Host: "ledboard.local",
            Port: 9520,
        },
        MQTT: MQTTConfig{
            Host:            "mqtt.local",
            Port:            1883,
            ClientID:        "ledboard-bridge",
            KeepAliveSec:    60,
            ConnectRetrySec: 120,
        },
        Ping: PingConfig{
            IntervalSec:        1,
            ConsecutiveAnswers: 3,
        },
        Performance: PerformanceConfig{
            MaxScreensPerSec:     0, // Unlimited by default
            DropStatsIntervalSec: 60,
            Dedup: DedupConfig{
                WindowMS: 2000,
                Size:     256,
            },
        },
        Journal: JournalConfig{
            Type: "none",
            File: FileJournalConfig{
                Path:       "/var/log/ledboard-bridge/datagrams.json",
                MaxSizeMB:  20,
                MaxBackups: 5,
                MaxAgeDays: 14,
                Compress:   true,
            },
        },
        Logging: LoggingConfig{
            Level:  "info",
            Output: "stdout",
        },
        Metrics: MetricsConfig{
            Enabled: false,
            Port:    9521,
        },
    }
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
    data, err := os.ReadFile(path)
    if err != nil {
        return nil, fmt.Errorf("reading config file: %w", err)
    }

    cfg := DefaultConfig()
    if err := yaml.Unmarshal(data, cfg); err != nil {
        return nil, fmt.Errorf("parsing config file: %w", err)
    }

    if err := cfg.ApplyEnv(); err != nil {
        return nil, err
    }

    if err := cfg.Validate(); err != nil {
        return nil, fmt.Errorf("validating config file: %w", err)
    }

    return cfg, nil
}

// ApplyEnv overrides settings from LEDBOARD_* environment variables.
// Unset variables leave the current value alone.
func (c *Config) ApplyEnv() error {
    if err := env.Parse(c); err != nil {
        return fmt.Errorf("parsing environment: %w", err)
    }
    return nil
}

// Validate checks the configuration for values the bridge cannot run with
func (c *Config) Validate() error {
    if c.Mode != ModeDefault && c.Mode != ModeLasercutter {
        return fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidMode, c.Mode, ModeDefault, ModeLasercutter)
    }

    if c.LedBoard.Host == "" {
        return errors.New("ledboard.host is required")
    }
    if err := validatePort("ledboard.port", c.LedBoard.Port); err != nil {
        return err
    }

    if c.MQTT.Host == "" {
        return errors.New("mqtt.host is required")
    }
    if err := validatePort("mqtt.port", c.MQTT.Port); err != nil {
        return err
    }
    if c.MQTT.ConnectRetrySec < 0 {
        return fmt.Errorf("mqtt.connect_retry_sec must not be negative, got %d", c.MQTT.ConnectRetrySec)
    }

    if c.Ping.IntervalSec <= 0 {
        return fmt.Errorf("ping.interval_sec must be positive, got %d", c.Ping.IntervalSec)
    }
    if c.Ping.ConsecutiveAnswers <= 0 {
        return fmt.Errorf("ping.consecutive_answers must be positive, got %d", c.Ping.ConsecutiveAnswers)
    }

    if c.Performance.MaxScreensPerSec < 0 {
        return fmt.Errorf("performance.max_screens_per_sec must not be negative, got %d", c.Performance.MaxScreensPerSec)
    }

    switch c.Journal.Type {
    case "", "none", "stdout", "simple":
    case "file":
        if c.Journal.File.Path == "" {
            return errors.New("journal.file.path is required for file journal")
        }
    default:
        return fmt.Errorf("unknown journal type %q", c.Journal.Type)
    }

    if c.Metrics.Enabled {
        if err := validatePort("metrics.port", c.Metrics.Port); err != nil {
            return err
        }
    }

    return nil
}

func validatePort(name string, port int) error {
    if port <= 0 || port > 65535 {
        return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
    }
    return nil
}
