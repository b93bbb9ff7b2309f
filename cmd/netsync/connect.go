package main

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/netsync/internal/capture"
	"github.com/vango-dev/netsync/internal/config"
	"github.com/vango-dev/netsync/internal/debugserver"
	"github.com/vango-dev/netsync/internal/errors"
	"github.com/vango-dev/netsync/pkg/client"
	"github.com/vango-dev/netsync/pkg/events"
	"github.com/vango-dev/netsync/pkg/input"
	"github.com/vango-dev/netsync/pkg/predict"
	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/telemetry"
	"github.com/vango-dev/netsync/pkg/transport"
	"github.com/vango-dev/netsync/pkg/transport/quictransport"
	"github.com/vango-dev/netsync/pkg/transport/wstransport"

	_ "github.com/vango-dev/netsync/pkg/transport/memtransport"
)

type connectOptions struct {
	addr        string
	transport   string
	name        string
	duration    time.Duration
	pattern     string
	join        bool
	team        uint8
	debugAddr   string
	captureDir  string
	renderRate  float64
	statsPeriod time.Duration
}

func connectCmd(g *globals) *cobra.Command {
	opts := connectOptions{}

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Run a headless bot against a server",
		Long: `Connect performs the handshake, joins the match and drives a
scripted input pattern with client-side prediction. Game events are
drained on a render clock and session stats are logged periodically.

Patterns:
  idle     send neutral input
  circle   walk forward while turning
  strafe   strafe left and right, jumping at each turn

Examples:
  netsync connect --addr game.example.com:7777
  netsync connect --transport websocket --addr ws://localhost:8080/ws --pattern strafe
  netsync connect --duration 2m --debug-addr 127.0.0.1:6060 --capture-dir captures`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			applyConnectFlags(cfg, opts)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runConnect(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Server address (default: server_addr)")
	cmd.Flags().StringVarP(&opts.transport, "transport", "t", "", "Transport: quic, websocket or mem (default: transport)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Player name (default: player_name)")
	cmd.Flags().DurationVarP(&opts.duration, "duration", "d", 0, "Disconnect after this long (default: run until interrupted)")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "circle", "Input pattern: idle, circle or strafe")
	cmd.Flags().BoolVar(&opts.join, "join", true, "Send a JoinRequest after the handshake")
	cmd.Flags().Uint8Var(&opts.team, "team", 0, "Team requested in JoinRequest")
	cmd.Flags().StringVar(&opts.debugAddr, "debug-addr", "", "Debug HTTP listen address (default: debug.addr)")
	cmd.Flags().StringVar(&opts.captureDir, "capture-dir", "", "Write a capture file to this directory (default: capture.dir)")
	cmd.Flags().Float64Var(&opts.renderRate, "render-rate", 60, "Render clock rate in Hz")
	cmd.Flags().DurationVar(&opts.statsPeriod, "stats-every", 5*time.Second, "Stats log period, 0 to disable")

	return cmd
}

func applyConnectFlags(cfg *config.Config, opts connectOptions) {
	if opts.addr != "" {
		cfg.ServerAddr = opts.addr
	}
	if opts.transport != "" {
		cfg.Transport = opts.transport
	}
	if opts.name != "" {
		cfg.PlayerName = opts.name
	}
	if opts.debugAddr != "" {
		cfg.Debug.Addr = opts.debugAddr
	}
	if opts.captureDir != "" {
		cfg.Capture.Dir = opts.captureDir
	}
}

// newDialer builds the configured transport. Registered transports without
// client settings come from the transport registry.
func newDialer(cfg *config.Config, logger *slog.Logger) (transport.Dialer, error) {
	switch cfg.Transport {
	case quictransport.Kind:
		return quictransport.NewDialer(quictransport.Config{
			TLS:             &tls.Config{InsecureSkipVerify: cfg.QUIC.InsecureSkipVerify}, //nolint:gosec // configurable for dev servers
			KeepAlivePeriod: cfg.QUICKeepAlive(),
			MaxIdleTimeout:  cfg.QUICMaxIdle(),
			Logger:          logger,
		}), nil
	case wstransport.Kind:
		wsCfg := wstransport.DefaultConfig()
		wsCfg.Logger = logger
		return wstransport.NewDialer(wsCfg), nil
	}
	d, err := transport.NewDialer(cfg.Transport)
	if err != nil {
		return nil, errors.New(errors.CodeUnknownTransport).
			WithField("transport", cfg.Transport).
			Wrap(err)
	}
	return d, nil
}

func runConnect(ctx context.Context, cfg *config.Config, opts connectOptions) error {
	logger := newLogger(cfg)

	sampler, err := botSampler(opts.pattern)
	if err != nil {
		return err
	}
	dialer, err := newDialer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ccfg := client.Config{
		ProtocolVersion:  uint16(cfg.ProtocolVersion),
		PlayerName:       cfg.PlayerName,
		ClientBuild:      "netsync/" + version,
		HandshakeTimeout: cfg.HandshakeTimeout(),
		PingInterval:     cfg.PingInterval(),
		TickRate:         cfg.Session.TickRate,
		SnapshotRate:     cfg.Session.SnapshotRate,
		InputRate:        cfg.Session.InputRate,
		Events: events.Config{
			GraceMs:          cfg.Events.GraceMs,
			MaxBufferedTicks: cfg.Events.MaxBufferedTicks,
		},
		Prediction: predict.Config{HistorySize: cfg.Prediction.HistorySize},
		Handlers:   botHandlers(logger),
		Metrics:    telemetry.NewMetrics(telemetry.WithRegistry(reg)),
		Tracer:     telemetry.NewTracer(),
		Logger:     logger,
	}

	if cfg.Capture.Dir != "" {
		w, path, err := openCapture(cfg.Capture.Dir)
		if err != nil {
			return err
		}
		defer func() {
			if err := w.Close(); err != nil {
				logger.Warn("closing capture", "path", path, "error", err)
				return
			}
			success("Captured %d frames to %s", w.Records(), path)
		}()
		ccfg.Capture = w
	}

	sess, err := client.Dial(ctx, dialer, cfg.ServerAddr, ccfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	hello := sess.ServerHello()
	success("Connected to %s as %s", cfg.ServerAddr, sess.ClientID())
	info("tick %g Hz, snapshot %g Hz, server tick %d", sess.TickRate(), sess.SnapshotRate(), hello.ServerTick)

	if opts.join {
		if err := sess.JoinRequest(&protocol.JoinRequest{PlayerName: cfg.PlayerName, Team: opts.team}); err != nil {
			return err
		}
	}

	sender := sess.StartInput(sampler)
	defer sender.Stop()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return sess.Run(egCtx) })
	eg.Go(func() error { return renderLoop(egCtx, sess, opts, logger) })
	if cfg.Debug.Addr != "" {
		srv := debugserver.New(debugserver.Config{
			Addr:     cfg.Debug.Addr,
			Gatherer: reg,
			Stats:    func() any { return sess.Stats() },
			Healthy: func() bool {
				select {
				case <-sess.Done():
					return false
				default:
					return true
				}
			},
			Logger: logger,
		})
		eg.Go(func() error { return srv.Run(egCtx) })
	}

	err = eg.Wait()
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, client.ErrSessionClosed) {
		err = nil
	}
	if err == nil {
		st := sess.Stats()
		success("Disconnected after %d snapshots, %d inputs, rtt %.1f ms", st.SnapshotsApplied, st.InputsSent, st.RTTMs)
	}
	return err
}

// renderLoop plays the role of a game's frame loop: it samples the local
// state, drains due game events and logs stats.
func renderLoop(ctx context.Context, sess *client.Session, opts connectOptions, logger *slog.Logger) error {
	rate := opts.renderRate
	if !(rate > 0) {
		rate = 60
	}
	clk := clock.New()
	frame := clk.Ticker(time.Duration(float64(time.Second) / rate))
	defer frame.Stop()

	var statsC <-chan time.Time
	if opts.statsPeriod > 0 {
		statsTicker := clk.Ticker(opts.statsPeriod)
		defer statsTicker.Stop()
		statsC = statsTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			// Close first so Run returns instead of reporting the cancel.
			sess.Close()
			return nil
		case <-sess.Done():
			return nil
		case <-frame.C:
			now := sess.NowMs()
			for _, ev := range sess.DrainEvents(now) {
				logger.Debug("game event",
					"kind", ev.Kind.String(),
					"shooter", ev.ShooterID,
					"target", ev.TargetID,
					"damage", ev.Damage)
			}
		case <-statsC:
			now := sess.NowMs()
			st := sess.Stats()
			attrs := []any{
				"server_tick", st.ServerTick,
				"rtt_ms", math.Round(st.RTTMs*10) / 10,
				"snapshots", st.SnapshotsApplied,
				"stale", st.SnapshotsStale,
				"deltas_rejected", st.DeltasRejected,
				"remotes", st.RemoteEntities,
				"inputs", st.InputsSent,
				"events_late", st.Events.LateEvents,
				"corrections", st.Prediction.Corrections,
			}
			if s, ok := sess.PredictedOrInterpolatedState(now); ok {
				attrs = append(attrs, "x", s.Pos.X, "y", s.Pos.Y, "z", s.Pos.Z)
			}
			logger.Info("session stats", attrs...)
		}
	}
}

func botHandlers(logger *slog.Logger) client.Handlers {
	return client.Handlers{
		OnJoinAccept: func(m *protocol.JoinAccept) {
			logger.Info("joined", "client_id", m.ClientID, "team", m.Team, "server_tick", m.ServerTick)
		},
		OnWeaponFired: func(m *protocol.WeaponFiredEvent) {
			logger.Debug("weapon fired", "shooter", m.ShooterID, "slot", m.WeaponSlot, "hit", m.Hit)
		},
		OnServerError: func(m *protocol.ErrorMessage) {
			logger.Warn("server error", "code", m.Code.String(), "message", m.Message)
		},
	}
}

// botSampler returns a scripted control pattern driven by wall time.
func botSampler(pattern string) (input.Sampler, error) {
	start := time.Now()
	elapsed := func() float64 { return time.Since(start).Seconds() }

	switch pattern {
	case "idle":
		return input.SamplerFunc(func() input.Sample { return input.Sample{} }), nil
	case "circle":
		return input.SamplerFunc(func() input.Sample {
			return input.Sample{MoveY: 1, Yaw: math.Mod(elapsed()*0.5, 2*math.Pi)}
		}), nil
	case "strafe":
		var lastDir float64
		return input.SamplerFunc(func() input.Sample {
			dir := 1.0
			if math.Sin(elapsed()*1.5) < 0 {
				dir = -1
			}
			s := input.Sample{MoveX: dir}
			if dir != lastDir {
				s.Buttons |= protocol.ButtonJump
			}
			lastDir = dir
			return s
		}), nil
	}
	return nil, errors.Newf(errors.CategoryCLI, "unknown pattern %q", pattern).
		WithSuggestion("Use idle, circle or strafe")
}

func openCapture(dir string) (*capture.Writer, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", errors.New(errors.CodeCaptureOpen).WithField("path", dir).Wrap(err)
	}
	path := filepath.Join(dir, time.Now().UTC().Format("20060102T150405Z")+capture.FileExt)
	w, err := capture.Create(path)
	if err != nil {
		return nil, "", err
	}
	return w, path, nil
}
