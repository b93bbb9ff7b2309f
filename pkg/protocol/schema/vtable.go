package schema

import flatbuffers "github.com/google/flatbuffers/go"

// Vtable offsets of the fields the protocol package checks for presence.
// A field that was never written has offset zero in the vtable.

const (
	ClientHelloVTProtocolVersion flatbuffers.VOffsetT = 4
	ClientHelloVTConnectionId flatbuffers.VOffsetT = 6
	ClientHelloVTPlayerName flatbuffers.VOffsetT = 8
	ClientHelloVTClientBuild flatbuffers.VOffsetT = 10
)

const (
	ServerHelloVTProtocolVersion flatbuffers.VOffsetT = 4
	ServerHelloVTConnectionId flatbuffers.VOffsetT = 6
	ServerHelloVTClientId flatbuffers.VOffsetT = 8
	ServerHelloVTTickRate flatbuffers.VOffsetT = 10
	ServerHelloVTSnapshotRate flatbuffers.VOffsetT = 12
	ServerHelloVTServerTick flatbuffers.VOffsetT = 14
	ServerHelloVTMotd flatbuffers.VOffsetT = 16
)

const (
	JoinRequestVTPlayerName flatbuffers.VOffsetT = 4
	JoinRequestVTTeam flatbuffers.VOffsetT = 6
	JoinRequestVTLoadout flatbuffers.VOffsetT = 8
)

const (
	JoinAcceptVTClientId flatbuffers.VOffsetT = 4
	JoinAcceptVTTeam flatbuffers.VOffsetT = 6
	JoinAcceptVTSpawnX flatbuffers.VOffsetT = 8
	JoinAcceptVTSpawnY flatbuffers.VOffsetT = 10
	JoinAcceptVTSpawnZ flatbuffers.VOffsetT = 12
	JoinAcceptVTServerTick flatbuffers.VOffsetT = 14
)

const (
	InputCmdVTInputSeq flatbuffers.VOffsetT = 4
	InputCmdVTClientTick flatbuffers.VOffsetT = 6
	InputCmdVTMoveX flatbuffers.VOffsetT = 8
	InputCmdVTMoveY flatbuffers.VOffsetT = 10
	InputCmdVTYaw flatbuffers.VOffsetT = 12
	InputCmdVTPitch flatbuffers.VOffsetT = 14
	InputCmdVTButtons flatbuffers.VOffsetT = 16
	InputCmdVTWeaponSlot flatbuffers.VOffsetT = 18
	InputCmdVTClientTimeMs flatbuffers.VOffsetT = 20
)

const (
	StateSnapshotVTServerTick flatbuffers.VOffsetT = 4
	StateSnapshotVTLastProcessedInputSeq flatbuffers.VOffsetT = 6
	StateSnapshotVTPosX flatbuffers.VOffsetT = 8
	StateSnapshotVTPosY flatbuffers.VOffsetT = 10
	StateSnapshotVTPosZ flatbuffers.VOffsetT = 12
	StateSnapshotVTVelX flatbuffers.VOffsetT = 14
	StateSnapshotVTVelY flatbuffers.VOffsetT = 16
	StateSnapshotVTVelZ flatbuffers.VOffsetT = 18
	StateSnapshotVTDashCooldown flatbuffers.VOffsetT = 20
	StateSnapshotVTHealth flatbuffers.VOffsetT = 22
	StateSnapshotVTKills flatbuffers.VOffsetT = 24
	StateSnapshotVTDeaths flatbuffers.VOffsetT = 26
	StateSnapshotVTWeaponSlot flatbuffers.VOffsetT = 28
	StateSnapshotVTAmmo flatbuffers.VOffsetT = 30
	StateSnapshotVTClientId flatbuffers.VOffsetT = 32
)

const (
	StateSnapshotDeltaVTServerTick flatbuffers.VOffsetT = 4
	StateSnapshotDeltaVTBaseTick flatbuffers.VOffsetT = 6
	StateSnapshotDeltaVTMask flatbuffers.VOffsetT = 8
	StateSnapshotDeltaVTLastProcessedInputSeq flatbuffers.VOffsetT = 10
	StateSnapshotDeltaVTPosX flatbuffers.VOffsetT = 12
	StateSnapshotDeltaVTPosY flatbuffers.VOffsetT = 14
	StateSnapshotDeltaVTPosZ flatbuffers.VOffsetT = 16
	StateSnapshotDeltaVTVelX flatbuffers.VOffsetT = 18
	StateSnapshotDeltaVTVelY flatbuffers.VOffsetT = 20
	StateSnapshotDeltaVTVelZ flatbuffers.VOffsetT = 22
	StateSnapshotDeltaVTDashCooldown flatbuffers.VOffsetT = 24
	StateSnapshotDeltaVTHealth flatbuffers.VOffsetT = 26
	StateSnapshotDeltaVTKills flatbuffers.VOffsetT = 28
	StateSnapshotDeltaVTDeaths flatbuffers.VOffsetT = 30
	StateSnapshotDeltaVTWeaponSlot flatbuffers.VOffsetT = 32
	StateSnapshotDeltaVTAmmo flatbuffers.VOffsetT = 34
	StateSnapshotDeltaVTClientId flatbuffers.VOffsetT = 36
)

const (
	GameEventVTKind flatbuffers.VOffsetT = 4
	GameEventVTShooterId flatbuffers.VOffsetT = 6
	GameEventVTTargetId flatbuffers.VOffsetT = 8
	GameEventVTProjectileId flatbuffers.VOffsetT = 10
	GameEventVTDamage flatbuffers.VOffsetT = 12
	GameEventVTHeadshot flatbuffers.VOffsetT = 14
	GameEventVTPosX flatbuffers.VOffsetT = 16
	GameEventVTPosY flatbuffers.VOffsetT = 18
	GameEventVTPosZ flatbuffers.VOffsetT = 20
	GameEventVTVelX flatbuffers.VOffsetT = 22
	GameEventVTVelY flatbuffers.VOffsetT = 24
	GameEventVTVelZ flatbuffers.VOffsetT = 26
	GameEventVTReason flatbuffers.VOffsetT = 28
)

const (
	GameEventBatchVTServerTick flatbuffers.VOffsetT = 4
	GameEventBatchVTEvents flatbuffers.VOffsetT = 6
)

const (
	PingVTNonce flatbuffers.VOffsetT = 4
	PingVTClientTimeMs flatbuffers.VOffsetT = 6
)

const (
	PongVTNonce flatbuffers.VOffsetT = 4
	PongVTClientTimeMs flatbuffers.VOffsetT = 6
	PongVTServerTimeMs flatbuffers.VOffsetT = 8
	PongVTServerTick flatbuffers.VOffsetT = 10
)

const (
	ErrorVTCode flatbuffers.VOffsetT = 4
	ErrorVTMessage flatbuffers.VOffsetT = 6
	ErrorVTFatal flatbuffers.VOffsetT = 8
)

const (
	DisconnectVTCode flatbuffers.VOffsetT = 4
	DisconnectVTReason flatbuffers.VOffsetT = 6
)

const (
	PlayerProfileVTClientId flatbuffers.VOffsetT = 4
	PlayerProfileVTName flatbuffers.VOffsetT = 6
	PlayerProfileVTTeam flatbuffers.VOffsetT = 8
	PlayerProfileVTKills flatbuffers.VOffsetT = 10
	PlayerProfileVTDeaths flatbuffers.VOffsetT = 12
	PlayerProfileVTPingMs flatbuffers.VOffsetT = 14
)

const (
	FireWeaponRequestVTInputSeq flatbuffers.VOffsetT = 4
	FireWeaponRequestVTClientTick flatbuffers.VOffsetT = 6
	FireWeaponRequestVTWeaponSlot flatbuffers.VOffsetT = 8
	FireWeaponRequestVTOriginX flatbuffers.VOffsetT = 10
	FireWeaponRequestVTOriginY flatbuffers.VOffsetT = 12
	FireWeaponRequestVTOriginZ flatbuffers.VOffsetT = 14
	FireWeaponRequestVTDirX flatbuffers.VOffsetT = 16
	FireWeaponRequestVTDirY flatbuffers.VOffsetT = 18
	FireWeaponRequestVTDirZ flatbuffers.VOffsetT = 20
)

const (
	WeaponFiredEventVTShooterId flatbuffers.VOffsetT = 4
	WeaponFiredEventVTServerTick flatbuffers.VOffsetT = 6
	WeaponFiredEventVTWeaponSlot flatbuffers.VOffsetT = 8
	WeaponFiredEventVTOriginX flatbuffers.VOffsetT = 10
	WeaponFiredEventVTOriginY flatbuffers.VOffsetT = 12
	WeaponFiredEventVTOriginZ flatbuffers.VOffsetT = 14
	WeaponFiredEventVTDirX flatbuffers.VOffsetT = 16
	WeaponFiredEventVTDirY flatbuffers.VOffsetT = 18
	WeaponFiredEventVTDirZ flatbuffers.VOffsetT = 20
	WeaponFiredEventVTHit flatbuffers.VOffsetT = 22
	WeaponFiredEventVTTargetId flatbuffers.VOffsetT = 24
)

const (
	WeaponReloadEventVTClientId flatbuffers.VOffsetT = 4
	WeaponReloadEventVTServerTick flatbuffers.VOffsetT = 6
	WeaponReloadEventVTWeaponSlot flatbuffers.VOffsetT = 8
	WeaponReloadEventVTAmmo flatbuffers.VOffsetT = 10
	WeaponReloadEventVTReloadMs flatbuffers.VOffsetT = 12
)

// Has reports whether the field at vtable offset vt was written into the table.
func Has(tab flatbuffers.Table, vt flatbuffers.VOffsetT) bool {
	return tab.Offset(vt) != 0
}

// SlotOf converts a vtable offset into the builder slot index.
func SlotOf(vt flatbuffers.VOffsetT) int {
	return int(vt-4) / 2
}
