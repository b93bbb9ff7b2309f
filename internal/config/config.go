package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vango-dev/netsync/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "netsync.json"

	// EnvPrefix prefixes environment overrides, e.g. NETSYNC_SERVER_ADDR or
	// NETSYNC_SESSION_TICK_RATE.
	EnvPrefix = "NETSYNC"

	// DefaultServerAddr is the default server address.
	DefaultServerAddr = "localhost:7777"

	// DefaultTransport is the default transport.
	DefaultTransport = "quic"
)

// Transports lists the transport names Validate accepts.
var Transports = []string{"quic", "websocket", "mem"}

// Config represents the complete netsync.json configuration.
type Config struct {
	// ServerAddr is the address to dial: host:port for QUIC, a ws:// URL
	// for WebSocket, a listener name for mem.
	ServerAddr string `json:"server_addr" mapstructure:"server_addr"`

	// Transport selects the transport: quic, websocket or mem.
	Transport string `json:"transport" mapstructure:"transport"`

	// PlayerName is sent in ClientHello and JoinRequest.
	PlayerName string `json:"player_name" mapstructure:"player_name"`

	// ProtocolVersion is the envelope version this client speaks.
	ProtocolVersion int `json:"protocol_version" mapstructure:"protocol_version"`

	// Session contains connection and timing settings.
	Session SessionConfig `json:"session" mapstructure:"session"`

	// Events contains game event queue settings.
	Events EventsConfig `json:"events" mapstructure:"events"`

	// Prediction contains client prediction settings.
	Prediction PredictionConfig `json:"prediction" mapstructure:"prediction"`

	// QUIC contains QUIC transport settings.
	QUIC QUICConfig `json:"quic" mapstructure:"quic"`

	// Debug contains debug server settings.
	Debug DebugConfig `json:"debug" mapstructure:"debug"`

	// Log contains logging settings.
	Log LogConfig `json:"log" mapstructure:"log"`

	// Capture contains frame capture settings.
	Capture CaptureConfig `json:"capture" mapstructure:"capture"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SessionConfig contains connection and timing settings.
type SessionConfig struct {
	// HandshakeTimeout bounds the wait for ServerHello (e.g., "5s").
	HandshakeTimeout string `json:"handshake_timeout" mapstructure:"handshake_timeout"`

	// PingInterval is the RTT probe period (e.g., "1s").
	PingInterval string `json:"ping_interval" mapstructure:"ping_interval"`

	// TickRate is the server simulation rate in Hz until ServerHello says
	// otherwise.
	TickRate float64 `json:"tick_rate" mapstructure:"tick_rate"`

	// SnapshotRate is the snapshot send rate in Hz until ServerHello says
	// otherwise.
	SnapshotRate float64 `json:"snapshot_rate" mapstructure:"snapshot_rate"`

	// InputRate is the InputCmd send rate in Hz.
	InputRate float64 `json:"input_rate" mapstructure:"input_rate"`
}

// EventsConfig contains game event queue settings.
type EventsConfig struct {
	// GraceMs is how late an event batch may arrive and still be delivered.
	GraceMs float64 `json:"grace_ms" mapstructure:"grace_ms"`

	// MaxBufferedTicks bounds the ticks held by the queue.
	MaxBufferedTicks int `json:"max_buffered_ticks" mapstructure:"max_buffered_ticks"`
}

// PredictionConfig contains client prediction settings.
type PredictionConfig struct {
	// HistorySize bounds the unacknowledged input history.
	HistorySize int `json:"history_size" mapstructure:"history_size"`
}

// QUICConfig contains QUIC transport settings.
type QUICConfig struct {
	// InsecureSkipVerify disables server certificate verification.
	InsecureSkipVerify bool `json:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`

	// KeepAlive is the keep-alive period (e.g., "5s").
	KeepAlive string `json:"keep_alive" mapstructure:"keep_alive"`

	// MaxIdle is the idle timeout (e.g., "30s").
	MaxIdle string `json:"max_idle" mapstructure:"max_idle"`
}

// DebugConfig contains debug server settings.
type DebugConfig struct {
	// Addr is the debug HTTP listen address. Empty disables the server.
	Addr string `json:"addr" mapstructure:"addr"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level" mapstructure:"level"`

	// Format is text or json.
	Format string `json:"format" mapstructure:"format"`
}

// CaptureConfig contains frame capture settings.
type CaptureConfig struct {
	// Dir is where capture files are written. Empty disables capture.
	Dir string `json:"dir" mapstructure:"dir"`

	// Bucket is the S3 bucket capture files are uploaded to.
	Bucket string `json:"bucket" mapstructure:"bucket"`

	// Prefix is prepended to uploaded object keys.
	Prefix string `json:"prefix" mapstructure:"prefix"`

	// Region overrides the AWS region from the environment.
	Region string `json:"region" mapstructure:"region"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		ServerAddr:      DefaultServerAddr,
		Transport:       DefaultTransport,
		ProtocolVersion: 1,
		Session: SessionConfig{
			HandshakeTimeout: "5s",
			PingInterval:     "1s",
			TickRate:         60,
			SnapshotRate:     20,
			InputRate:        60,
		},
		Events: EventsConfig{
			GraceMs:          150,
			MaxBufferedTicks: 120,
		},
		Prediction: PredictionConfig{
			HistorySize: 128,
		},
		QUIC: QUICConfig{
			InsecureSkipVerify: true,
			KeepAlive:          "5s",
			MaxIdle:            "30s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Capture: CaptureConfig{
			Prefix: "captures/",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for netsync.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Environment
// variables override values from the file.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found at " + path)
		}
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}

	v, err := newViper()
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.MergeInConfig(); err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// LoadEnv returns the defaults with environment overrides applied. It is
// used when no configuration file exists.
func LoadEnv() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// newViper returns a viper instance seeded with every default so that
// AutomaticEnv can override any key.
func newViper() (*viper.Viper, error) {
	defaults, err := json.Marshal(New())
	if err != nil {
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to decode configuration: " + err.Error())
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(key, reason string) *errors.NetError {
		return errors.New(errors.CodeConfigInvalid).
			WithReason(reason).
			WithField("key", key)
	}

	if c.ServerAddr == "" {
		return invalid("server_addr", "server_addr must not be empty")
	}
	if !isKnownTransport(c.Transport) {
		return invalid("transport", "unknown transport "+strconv.Quote(c.Transport)).
			WithSuggestion("Use one of: " + strings.Join(Transports, ", "))
	}
	if c.ProtocolVersion < 1 || c.ProtocolVersion > 65535 {
		return invalid("protocol_version", "protocol_version must be between 1 and 65535")
	}

	for _, d := range []struct{ key, value string }{
		{"session.handshake_timeout", c.Session.HandshakeTimeout},
		{"session.ping_interval", c.Session.PingInterval},
		{"quic.keep_alive", c.QUIC.KeepAlive},
		{"quic.max_idle", c.QUIC.MaxIdle},
	} {
		if dur, err := time.ParseDuration(d.value); err != nil || dur <= 0 {
			return invalid(d.key, d.key+" must be a positive duration such as \"5s\"")
		}
	}

	for _, r := range []struct {
		key   string
		value float64
	}{
		{"session.tick_rate", c.Session.TickRate},
		{"session.snapshot_rate", c.Session.SnapshotRate},
		{"session.input_rate", c.Session.InputRate},
	} {
		if !(r.value > 0) || r.value > 1000 {
			return invalid(r.key, r.key+" must be in (0, 1000] Hz")
		}
	}

	if !(c.Events.GraceMs >= 0) {
		return invalid("events.grace_ms", "events.grace_ms must not be negative")
	}
	if c.Events.MaxBufferedTicks <= 0 {
		return invalid("events.max_buffered_ticks", "events.max_buffered_ticks must be positive")
	}
	if c.Prediction.HistorySize <= 0 {
		return invalid("prediction.history_size", "prediction.history_size must be positive")
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return invalid("log.level", "log.level must be debug, info, warn or error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format", "log.format must be text or json")
	}
	return nil
}

func isKnownTransport(name string) bool {
	for _, t := range Transports {
		if t == name {
			return true
		}
	}
	return false
}

// HandshakeTimeout returns the parsed handshake timeout.
func (c *Config) HandshakeTimeout() time.Duration {
	return parseDuration(c.Session.HandshakeTimeout, 5*time.Second)
}

// PingInterval returns the parsed ping interval.
func (c *Config) PingInterval() time.Duration {
	return parseDuration(c.Session.PingInterval, time.Second)
}

// QUICKeepAlive returns the parsed QUIC keep-alive period.
func (c *Config) QUICKeepAlive() time.Duration {
	return parseDuration(c.QUIC.KeepAlive, 5*time.Second)
}

// QUICMaxIdle returns the parsed QUIC idle timeout.
func (c *Config) QUICMaxIdle() time.Duration {
	return parseDuration(c.QUIC.MaxIdle, 30*time.Second)
}

// LogLevel returns the slog level for Log.Level.
func (c *Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the directory containing
// netsync.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest netsync.json above the working
// directory, or the environment-only configuration when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.Code(err) == errors.CodeConfigNotFound {
			return LoadEnv()
		}
		return nil, err
	}

	return Load(root)
}
