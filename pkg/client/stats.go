package client

import (
	"github.com/vango-dev/netsync/pkg/events"
	"github.com/vango-dev/netsync/pkg/predict"
)

// Stats is a point-in-time view of a session, served as JSON by the debug
// server.
type Stats struct {
	ConnectionID string  `json:"connection_id"`
	ClientID     string  `json:"client_id"`
	RemoteAddr   string  `json:"remote_addr"`
	TickRate     float64 `json:"tick_rate"`
	SnapshotRate float64 `json:"snapshot_rate"`

	MsgSeq       uint32 `json:"msg_seq"`
	ServerSeqAck uint32 `json:"server_seq_ack"`
	ServerTick   uint32 `json:"server_tick_estimate"`

	FramesReliable   uint64 `json:"frames_reliable"`
	FramesUnreliable uint64 `json:"frames_unreliable"`
	Malformed        uint64 `json:"malformed"`
	SnapshotsApplied uint64 `json:"snapshots_applied"`
	SnapshotsStale   uint64 `json:"snapshots_stale"`
	DeltasRejected   uint64 `json:"deltas_rejected"`
	Untracked        uint64 `json:"untracked_snapshots"`
	RemoteEntities   int    `json:"remote_entities"`
	BufferedLocal    int    `json:"buffered_local"`

	RTTMs       float64 `json:"rtt_ms"`
	RTTVarMs    float64 `json:"rtt_var_ms"`
	RTTMinMs    float64 `json:"rtt_min_ms"`
	RTTSamples  uint64  `json:"rtt_samples"`
	InputsSent  uint64  `json:"inputs_sent"`
	InputsError uint64  `json:"inputs_failed"`

	Events     events.Stats  `json:"events"`
	Prediction predict.Stats `json:"prediction"`
}

// Stats returns current session counters.
func (s *Session) Stats() Stats {
	tick := s.EstimatedServerTick()

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.counters
	return Stats{
		ConnectionID:     s.connectionID,
		ClientID:         s.clientID,
		RemoteAddr:       s.conn.RemoteAddr(),
		TickRate:         s.tickRate,
		SnapshotRate:     s.snapshotRate,
		MsgSeq:           s.seq.Load(),
		ServerSeqAck:     s.serverAck.Load(),
		ServerTick:       tick,
		FramesReliable:   c.framesReliable,
		FramesUnreliable: c.framesUnreliable,
		Malformed:        c.malformed,
		SnapshotsApplied: c.snapshotsApplied,
		SnapshotsStale:   c.snapshotsStale,
		DeltasRejected:   c.deltasRejected,
		Untracked:        c.untracked,
		RemoteEntities:   len(s.remotes),
		BufferedLocal:    s.local.buffer.Len(),
		RTTMs:            s.rtt.Smoothed(),
		RTTVarMs:         s.rtt.Variance(),
		RTTMinMs:         s.rtt.Min(),
		RTTSamples:       s.rtt.Samples(),
		InputsSent:       c.inputsSent,
		InputsError:      c.inputsFailed,
		Events:           s.queue.Stats(),
		Prediction:       s.predictor.Stats(),
	}
}
