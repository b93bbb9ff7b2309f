package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/netsync/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ServerAddr != DefaultServerAddr {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, DefaultServerAddr)
	}
	if cfg.Transport != DefaultTransport {
		t.Errorf("Transport = %q, want %q", cfg.Transport, DefaultTransport)
	}
	if cfg.ProtocolVersion != 1 {
		t.Errorf("ProtocolVersion = %d, want 1", cfg.ProtocolVersion)
	}
	if cfg.Session.TickRate != 60 || cfg.Session.SnapshotRate != 20 {
		t.Errorf("rates = %v/%v, want 60/20", cfg.Session.TickRate, cfg.Session.SnapshotRate)
	}
	if cfg.HandshakeTimeout() != 5*time.Second {
		t.Errorf("HandshakeTimeout() = %v, want 5s", cfg.HandshakeTimeout())
	}
	if cfg.PingInterval() != time.Second {
		t.Errorf("PingInterval() = %v, want 1s", cfg.PingInterval())
	}
	if cfg.Events.GraceMs != 150 || cfg.Events.MaxBufferedTicks != 120 {
		t.Errorf("Events = %+v", cfg.Events)
	}
	if cfg.Prediction.HistorySize != 128 {
		t.Errorf("HistorySize = %d, want 128", cfg.Prediction.HistorySize)
	}
	if cfg.Debug.Addr != "" {
		t.Errorf("Debug.Addr = %q, want empty", cfg.Debug.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if errors.Code(err) != errors.CodeConfigNotFound {
		t.Fatalf("Load() missing file error = %v, want %s", err, errors.CodeConfigNotFound)
	}

	configJSON := `{
  "server_addr": "ws://game.example.com/play",
  "transport": "websocket",
  "session": {
    "tick_rate": 30,
    "handshake_timeout": "2s"
  },
  "log": { "level": "debug" }
}
`
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.ServerAddr != "ws://game.example.com/play" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr)
	}
	if cfg.Transport != "websocket" {
		t.Errorf("Transport = %q", cfg.Transport)
	}
	if cfg.Session.TickRate != 30 {
		t.Errorf("TickRate = %v, want 30", cfg.Session.TickRate)
	}
	if cfg.HandshakeTimeout() != 2*time.Second {
		t.Errorf("HandshakeTimeout() = %v, want 2s", cfg.HandshakeTimeout())
	}
	// Keys absent from the file keep their defaults.
	if cfg.Session.SnapshotRate != 20 {
		t.Errorf("SnapshotRate = %v, want default 20", cfg.Session.SnapshotRate)
	}
	if cfg.Prediction.HistorySize != 128 {
		t.Errorf("HistorySize = %d, want default 128", cfg.Prediction.HistorySize)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(path)
	if errors.Code(err) != errors.CodeConfigParse {
		t.Fatalf("LoadFile() error = %v, want %s", err, errors.CodeConfigParse)
	}
}

func TestEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"server_addr": "file:7777"}`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("NETSYNC_SERVER_ADDR", "env:9000")
	t.Setenv("NETSYNC_SESSION_SNAPSHOT_RATE", "30")
	t.Setenv("NETSYNC_CAPTURE_BUCKET", "captures-bucket")
	t.Setenv("NETSYNC_PLAYER_NAME", "bot")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.ServerAddr != "env:9000" {
		t.Errorf("ServerAddr = %q, want env override", cfg.ServerAddr)
	}
	if cfg.Session.SnapshotRate != 30 {
		t.Errorf("SnapshotRate = %v, want 30", cfg.Session.SnapshotRate)
	}
	if cfg.Capture.Bucket != "captures-bucket" {
		t.Errorf("Capture.Bucket = %q", cfg.Capture.Bucket)
	}
	if cfg.PlayerName != "bot" {
		t.Errorf("PlayerName = %q", cfg.PlayerName)
	}

	envOnly, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv error: %v", err)
	}
	if envOnly.ServerAddr != "env:9000" || envOnly.Transport != DefaultTransport {
		t.Errorf("LoadEnv() = %+v", envOnly)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := New()
	cfg.PlayerName = "alice"
	cfg.Debug.Addr = "127.0.0.1:6060"

	path := filepath.Join(tmpDir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"player_name": "alice"`) {
		t.Errorf("saved file missing player_name:\n%s", data)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("saved file should end with a newline")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.PlayerName != "alice" || loaded.Debug.Addr != "127.0.0.1:6060" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}

	loaded.PlayerName = "bob"
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := New().Save(); err == nil {
		t.Error("Save without a path should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantKey string
	}{
		{"empty addr", func(c *Config) { c.ServerAddr = "" }, "server_addr"},
		{"unknown transport", func(c *Config) { c.Transport = "carrier-pigeon" }, "transport"},
		{"version zero", func(c *Config) { c.ProtocolVersion = 0 }, "protocol_version"},
		{"bad timeout", func(c *Config) { c.Session.HandshakeTimeout = "soon" }, "session.handshake_timeout"},
		{"negative ping", func(c *Config) { c.Session.PingInterval = "-1s" }, "session.ping_interval"},
		{"zero tick rate", func(c *Config) { c.Session.TickRate = 0 }, "session.tick_rate"},
		{"huge snapshot rate", func(c *Config) { c.Session.SnapshotRate = 5000 }, "session.snapshot_rate"},
		{"negative grace", func(c *Config) { c.Events.GraceMs = -1 }, "events.grace_ms"},
		{"zero buffered ticks", func(c *Config) { c.Events.MaxBufferedTicks = 0 }, "events.max_buffered_ticks"},
		{"zero history", func(c *Config) { c.Prediction.HistorySize = 0 }, "prediction.history_size"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad keep alive", func(c *Config) { c.QUIC.KeepAlive = "" }, "quic.keep_alive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			ne := errors.FromError(err, "")
			if ne == nil || ne.Code != errors.CodeConfigInvalid {
				t.Fatalf("Validate() = %v, want %s", err, errors.CodeConfigInvalid)
			}
			if ne.Fields["key"] != tt.wantKey {
				t.Errorf("key = %q, want %q", ne.Fields["key"], tt.wantKey)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := New().SaveTo(filepath.Join(root, ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists() mismatch")
	}
}
