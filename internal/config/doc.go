// Package config loads client configuration for netsync.
//
// The configuration is stored in netsync.json. Every key can be overridden
// from the environment with the NETSYNC_ prefix, nested keys joined by
// underscores: NETSYNC_SERVER_ADDR, NETSYNC_SESSION_TICK_RATE,
// NETSYNC_CAPTURE_BUCKET.
//
// # Configuration File Structure
//
//	{
//	  "server_addr": "game.example.com:7777",
//	  "transport": "quic",
//	  "player_name": "bot-1",
//	  "protocol_version": 1,
//	  "session": {
//	    "handshake_timeout": "5s",
//	    "ping_interval": "1s",
//	    "tick_rate": 60,
//	    "snapshot_rate": 20,
//	    "input_rate": 60
//	  },
//	  "events": { "grace_ms": 150, "max_buffered_ticks": 120 },
//	  "prediction": { "history_size": 128 },
//	  "debug": { "addr": "127.0.0.1:6060" },
//	  "log": { "level": "info", "format": "text" },
//	  "capture": { "dir": "captures", "bucket": "netsync-captures" }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
