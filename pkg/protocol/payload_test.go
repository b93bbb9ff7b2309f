package protocol

import (
	"errors"
	"math"
	"reflect"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vango-dev/netsync/pkg/protocol/schema"
)

func sampleSnapshot() *StateSnapshot {
	return &StateSnapshot{
		ServerTick:            120,
		LastProcessedInputSeq: 41,
		Pos:                   Vec3{X: 1.5, Y: 0, Z: -3.25},
		Vel:                   Vec3{X: 0, Y: 4, Z: 2},
		DashCooldown:          0.5,
		Health:                75,
		Kills:                 3,
		Deaths:                1,
		WeaponSlot:            2,
		Ammo:                  30,
		ClientID:              "player-1",
	}
}

func TestStateSnapshotEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		snap *StateSnapshot
	}{
		{"full", sampleSnapshot()},
		{"zero_values", &StateSnapshot{LastProcessedInputSeq: 0}},
		{"no_input_yet", &StateSnapshot{ServerTick: 1, LastProcessedInputSeq: NoInputSeq, Health: 100}},
		{"unnamed_entity", &StateSnapshot{ServerTick: 9, Pos: Vec3{X: -100, Y: 2, Z: 7}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseStateSnapshot(MarshalStateSnapshot(tc.snap))
			if err != nil {
				t.Fatalf("ParseStateSnapshot() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.snap) {
				t.Errorf("ParseStateSnapshot() = %+v, want %+v", got, tc.snap)
			}
		})
	}
}

func TestParseStateSnapshotRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *StateSnapshot)
	}{
		{"nan_position", func(s *StateSnapshot) { s.Pos.X = math.NaN() }},
		{"inf_velocity", func(s *StateSnapshot) { s.Vel.Z = math.Inf(-1) }},
		{"input_seq_below_sentinel", func(s *StateSnapshot) { s.LastProcessedInputSeq = -2 }},
		{"negative_health", func(s *StateSnapshot) { s.Health = -5 }},
		{"absurd_health", func(s *StateSnapshot) { s.Health = MaxHealth + 1 }},
		{"negative_kills", func(s *StateSnapshot) { s.Kills = -1 }},
		{"negative_deaths", func(s *StateSnapshot) { s.Deaths = -1 }},
		{"weapon_slot_out_of_range", func(s *StateSnapshot) { s.WeaponSlot = MaxWeaponSlots }},
		{"negative_cooldown", func(s *StateSnapshot) { s.DashCooldown = -0.1 }},
		{"nan_cooldown", func(s *StateSnapshot) { s.DashCooldown = math.NaN() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := sampleSnapshot()
			tc.mutate(s)
			got, err := ParseStateSnapshot(MarshalStateSnapshot(s))
			if got != nil {
				t.Errorf("ParseStateSnapshot() = %+v, want nil", got)
			}
			if !errors.Is(err, ErrInvalidField) {
				t.Errorf("ParseStateSnapshot() error = %v, want ErrInvalidField", err)
			}
		})
	}
}

func TestParseStateSnapshotMissingRequired(t *testing.T) {
	// Built with the schema's default-skipping helpers: a zero server tick is
	// never written, so the table is missing a required field.
	b := flatbuffers.NewBuilder(64)
	schema.StateSnapshotStart(b)
	schema.StateSnapshotAddServerTick(b, 0)
	schema.StateSnapshotAddLastProcessedInputSeq(b, 3)
	schema.StateSnapshotAddPosX(b, 1)
	schema.StateSnapshotAddPosY(b, 1)
	schema.StateSnapshotAddPosZ(b, 1)
	schema.StateSnapshotAddVelX(b, 1)
	schema.StateSnapshotAddVelY(b, 1)
	schema.StateSnapshotAddVelZ(b, 1)
	b.Finish(schema.StateSnapshotEnd(b))

	got, err := ParseStateSnapshot(b.FinishedBytes())
	if got != nil {
		t.Errorf("ParseStateSnapshot() = %+v, want nil", got)
	}
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("ParseStateSnapshot() error = %v, want ErrMissingField", err)
	}
}

func TestParseMalformedPayloads(t *testing.T) {
	payloads := map[string][]byte{
		"empty":       {},
		"short":       {1, 2, 3},
		"garbage":     {0xFF, 0xFF, 0xFF, 0x7F, 0x00, 0x00, 0x00, 0x00, 0x01},
		"root_beyond": {0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	}

	for name, p := range payloads {
		t.Run(name, func(t *testing.T) {
			if s, err := ParseStateSnapshot(p); s != nil || err == nil {
				t.Errorf("ParseStateSnapshot() = %v, %v; want nil, error", s, err)
			}
			if d, err := ParseStateSnapshotDelta(p); d != nil || err == nil {
				t.Errorf("ParseStateSnapshotDelta() = %v, %v; want nil, error", d, err)
			}
			if b, err := ParseGameEventBatch(p); b != nil || err == nil {
				t.Errorf("ParseGameEventBatch() = %v, %v; want nil, error", b, err)
			}
		})
	}
}

func TestStateSnapshotDeltaEncodeDecode(t *testing.T) {
	d := &StateSnapshotDelta{
		ServerTick:            130,
		BaseTick:              120,
		Mask:                  DeltaPosX | DeltaVelY | DeltaHealth | DeltaLastProcessedInputSeq,
		LastProcessedInputSeq: 0,
		Pos:                   Vec3{X: 0},
		Vel:                   Vec3{Y: -9.5},
		Health:                60,
		ClientID:              "player-1",
	}

	got, err := ParseStateSnapshotDelta(MarshalStateSnapshotDelta(d))
	if err != nil {
		t.Fatalf("ParseStateSnapshotDelta() error = %v", err)
	}
	if !reflect.DeepEqual(got, d) {
		t.Errorf("ParseStateSnapshotDelta() = %+v, want %+v", got, d)
	}
}

func TestParseStateSnapshotDeltaRejects(t *testing.T) {
	t.Run("unknown_mask_bits", func(t *testing.T) {
		d := &StateSnapshotDelta{ServerTick: 2, BaseTick: 1, Mask: DeltaAll + 1}
		if got, err := ParseStateSnapshotDelta(MarshalStateSnapshotDelta(d)); got != nil || !errors.Is(err, ErrInvalidField) {
			t.Errorf("ParseStateSnapshotDelta() = %v, %v; want nil, ErrInvalidField", got, err)
		}
	})

	t.Run("base_after_server_tick", func(t *testing.T) {
		d := &StateSnapshotDelta{ServerTick: 2, BaseTick: 3}
		if got, err := ParseStateSnapshotDelta(MarshalStateSnapshotDelta(d)); got != nil || !errors.Is(err, ErrInvalidField) {
			t.Errorf("ParseStateSnapshotDelta() = %v, %v; want nil, ErrInvalidField", got, err)
		}
	})

	t.Run("mask_field_missing", func(t *testing.T) {
		b := flatbuffers.NewBuilder(64)
		schema.StateSnapshotDeltaStart(b)
		putUint32(b, schema.StateSnapshotDeltaVTServerTick, 5)
		putUint32(b, schema.StateSnapshotDeltaVTBaseTick, 4)
		putUint32(b, schema.StateSnapshotDeltaVTMask, uint32(DeltaPosX|DeltaPosY))
		putFloat64(b, schema.StateSnapshotDeltaVTPosX, 1)
		b.Finish(schema.StateSnapshotDeltaEnd(b))

		got, err := ParseStateSnapshotDelta(b.FinishedBytes())
		if got != nil || !errors.Is(err, ErrMissingField) {
			t.Errorf("ParseStateSnapshotDelta() = %v, %v; want nil, ErrMissingField", got, err)
		}
	})

	t.Run("non_finite_value", func(t *testing.T) {
		d := &StateSnapshotDelta{ServerTick: 2, BaseTick: 1, Mask: DeltaVelX, Vel: Vec3{X: math.Inf(1)}}
		if got, err := ParseStateSnapshotDelta(MarshalStateSnapshotDelta(d)); got != nil || !errors.Is(err, ErrInvalidField) {
			t.Errorf("ParseStateSnapshotDelta() = %v, %v; want nil, ErrInvalidField", got, err)
		}
	})
}

func TestHandshakeEncodeDecode(t *testing.T) {
	ch := &ClientHello{
		ProtocolVersion: Version,
		ConnectionID:    "5f0c3c1e-8d4c-4c4b-9a3a-0f6f2c1d9b10",
		PlayerName:      "ranger",
		ClientBuild:     "dev",
	}
	env, err := DecodeEnvelope(BuildClientHello(ch, 1, 0))
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}
	if env.Type != MsgClientHello {
		t.Fatalf("Type = %v, want ClientHello", env.Type)
	}
	gotCH, err := ParseClientHello(env.Payload)
	if err != nil {
		t.Fatalf("ParseClientHello() error = %v", err)
	}
	if *gotCH != *ch {
		t.Errorf("ParseClientHello() = %+v, want %+v", gotCH, ch)
	}

	sh := &ServerHello{
		ProtocolVersion: Version,
		ConnectionID:    ch.ConnectionID,
		ClientID:        "p7",
		TickRate:        60,
		SnapshotRate:    20,
		ServerTick:      9000,
	}
	gotSH, err := ParseServerHello(MarshalServerHello(sh))
	if err != nil {
		t.Fatalf("ParseServerHello() error = %v", err)
	}
	if *gotSH != *sh {
		t.Errorf("ParseServerHello() = %+v, want %+v", gotSH, sh)
	}
}

func TestParseServerHelloMissingClientID(t *testing.T) {
	sh := &ServerHello{ProtocolVersion: Version, ConnectionID: "c"}
	if got, err := ParseServerHello(MarshalServerHello(sh)); got != nil || err == nil {
		t.Errorf("ParseServerHello() = %v, %v; want nil, error", got, err)
	}
}

func TestInputCmdEncodeDecode(t *testing.T) {
	cmd := &InputCmd{
		InputSeq:     0,
		ClientTick:   55,
		MoveX:        -1,
		MoveY:        0.5,
		Yaw:          3.1,
		Pitch:        -0.2,
		Buttons:      ButtonJump | ButtonFire,
		WeaponSlot:   1,
		ClientTimeMs: 16.6,
	}
	env, err := DecodeEnvelope(EncodeInputCmd(cmd, 9, 4))
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}
	got, err := ParseInputCmd(env.Payload)
	if err != nil {
		t.Fatalf("ParseInputCmd() error = %v", err)
	}
	if *got != *cmd {
		t.Errorf("ParseInputCmd() = %+v, want %+v", got, cmd)
	}
}

func TestValidateInputCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     InputCmd
		wantErr bool
	}{
		{"valid", InputCmd{MoveX: 1, MoveY: -1}, false},
		{"axis_out_of_range", InputCmd{MoveX: 1.5}, true},
		{"nan_axis", InputCmd{MoveY: float32(math.NaN())}, true},
		{"inf_yaw", InputCmd{Yaw: float32(math.Inf(1))}, true},
		{"pitch_past_vertical", InputCmd{Pitch: 2}, true},
		{"unknown_button", InputCmd{Buttons: 1 << 12}, true},
		{"bad_slot", InputCmd{WeaponSlot: MaxWeaponSlots}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateInputCmd(&tc.cmd)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateInputCmd() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestGameEventBatchEncodeDecode(t *testing.T) {
	batch := &GameEventBatch{
		ServerTick: 77,
		Events: []GameEvent{
			{Kind: EventHitConfirm, ShooterID: "a", TargetID: "b", Damage: 25, Headshot: true},
			{Kind: EventProjectileSpawn, ProjectileID: 9, ShooterID: "a", Pos: Vec3{X: 1, Y: 2, Z: 3}, Vel: Vec3{Z: 40}},
			{Kind: EventProjectileRemove, ProjectileID: 9, Reason: RemoveHitWorld},
		},
	}
	got, err := ParseGameEventBatch(MarshalGameEventBatch(batch))
	if err != nil {
		t.Fatalf("ParseGameEventBatch() error = %v", err)
	}
	if !reflect.DeepEqual(got, batch) {
		t.Errorf("ParseGameEventBatch() = %+v, want %+v", got, batch)
	}

	empty := &GameEventBatch{ServerTick: 3, Events: []GameEvent{}}
	got, err = ParseGameEventBatch(MarshalGameEventBatch(empty))
	if err != nil {
		t.Fatalf("ParseGameEventBatch(empty) error = %v", err)
	}
	if got.ServerTick != 3 || len(got.Events) != 0 {
		t.Errorf("ParseGameEventBatch(empty) = %+v", got)
	}
}

func TestParseGameEventBatchRejectsUnknownKind(t *testing.T) {
	batch := &GameEventBatch{ServerTick: 1, Events: []GameEvent{{Kind: eventKindEnd}}}
	if got, err := ParseGameEventBatch(MarshalGameEventBatch(batch)); got != nil || !errors.Is(err, ErrInvalidField) {
		t.Errorf("ParseGameEventBatch() = %v, %v; want nil, ErrInvalidField", got, err)
	}
}

func TestControlMessages(t *testing.T) {
	ping := &Ping{Nonce: 0, ClientTimeMs: 0}
	gotPing, err := ParsePing(MarshalPing(ping))
	if err != nil {
		t.Fatalf("ParsePing() error = %v", err)
	}
	if *gotPing != *ping {
		t.Errorf("ParsePing() = %+v, want %+v", gotPing, ping)
	}

	pong := &Pong{Nonce: 4, ClientTimeMs: 1000.5, ServerTimeMs: 1010, ServerTick: 600}
	gotPong, err := ParsePong(MarshalPong(pong))
	if err != nil {
		t.Fatalf("ParsePong() error = %v", err)
	}
	if *gotPong != *pong {
		t.Errorf("ParsePong() = %+v, want %+v", gotPong, pong)
	}

	em := NewFatalError(ErrCodeVersionMismatch, "server speaks v2")
	gotErr, err := ParseErrorMessage(MarshalErrorMessage(em))
	if err != nil {
		t.Fatalf("ParseErrorMessage() error = %v", err)
	}
	if *gotErr != *em {
		t.Errorf("ParseErrorMessage() = %+v, want %+v", gotErr, em)
	}
	if gotErr.Error() != "VersionMismatch: server speaks v2" {
		t.Errorf("Error() = %q", gotErr.Error())
	}

	dc := &Disconnect{Code: CloseKicked, Reason: "idle"}
	gotDC, err := ParseDisconnect(MarshalDisconnect(dc))
	if err != nil {
		t.Fatalf("ParseDisconnect() error = %v", err)
	}
	if *gotDC != *dc {
		t.Errorf("ParseDisconnect() = %+v, want %+v", gotDC, dc)
	}
}

func TestWeaponMessages(t *testing.T) {
	fire := &FireWeaponRequest{InputSeq: 12, WeaponSlot: 1, Origin: Vec3{Y: 1.7}, Dir: Vec3{Z: 1}}
	gotFire, err := ParseFireWeaponRequest(MarshalFireWeaponRequest(fire))
	if err != nil {
		t.Fatalf("ParseFireWeaponRequest() error = %v", err)
	}
	if *gotFire != *fire {
		t.Errorf("ParseFireWeaponRequest() = %+v, want %+v", gotFire, fire)
	}

	badDir := &FireWeaponRequest{InputSeq: 1, Dir: Vec3{X: 0.5}}
	if got, err := ParseFireWeaponRequest(MarshalFireWeaponRequest(badDir)); got != nil || err == nil {
		t.Errorf("ParseFireWeaponRequest(non-unit dir) = %v, %v; want nil, error", got, err)
	}

	fired := &WeaponFiredEvent{ShooterID: "a", ServerTick: 10, Dir: Vec3{X: 1}, Hit: true, TargetID: "b"}
	gotFired, err := ParseWeaponFiredEvent(MarshalWeaponFiredEvent(fired))
	if err != nil {
		t.Fatalf("ParseWeaponFiredEvent() error = %v", err)
	}
	if *gotFired != *fired {
		t.Errorf("ParseWeaponFiredEvent() = %+v, want %+v", gotFired, fired)
	}

	reload := &WeaponReloadEvent{ClientID: "a", ServerTick: 0, WeaponSlot: 2, Ammo: 30, ReloadMs: 1500}
	gotReload, err := ParseWeaponReloadEvent(MarshalWeaponReloadEvent(reload))
	if err != nil {
		t.Fatalf("ParseWeaponReloadEvent() error = %v", err)
	}
	if *gotReload != *reload {
		t.Errorf("ParseWeaponReloadEvent() = %+v, want %+v", gotReload, reload)
	}

	profile := &PlayerProfile{ClientID: "a", Name: "ranger", Team: 1, Kills: 2, PingMs: 40}
	gotProfile, err := ParsePlayerProfile(MarshalPlayerProfile(profile))
	if err != nil {
		t.Fatalf("ParsePlayerProfile() error = %v", err)
	}
	if *gotProfile != *profile {
		t.Errorf("ParsePlayerProfile() = %+v, want %+v", gotProfile, profile)
	}
}

func TestDecodeMessage(t *testing.T) {
	snap := sampleSnapshot()
	env, msg, err := DecodeMessage(BuildStateSnapshot(snap, 3, 2))
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if env.MsgSeq != 3 {
		t.Errorf("MsgSeq = %d, want 3", env.MsgSeq)
	}
	got, ok := msg.(*StateSnapshot)
	if !ok {
		t.Fatalf("DecodeMessage() message type = %T, want *StateSnapshot", msg)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("DecodeMessage() = %+v, want %+v", got, snap)
	}

	// A valid envelope around a payload of the wrong type is still rejected.
	mislabeled := Wrap(MsgStateSnapshot, MarshalPing(&Ping{Nonce: 1, ClientTimeMs: 2}), 0, 0)
	if _, msg, err := DecodeMessage(mislabeled); msg != nil || err == nil {
		t.Errorf("DecodeMessage(mislabeled) = %v, %v; want nil, error", msg, err)
	}
}
