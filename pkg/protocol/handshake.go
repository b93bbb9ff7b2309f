package protocol

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vango-dev/netsync/pkg/protocol/schema"
)

// ClientHello is the first message on the reliable channel once it opens.
type ClientHello struct {
	ProtocolVersion uint16
	ConnectionID    string // Client-generated, echoed back in ServerHello
	PlayerName      string
	ClientBuild     string
}

// ServerHello is the server's single reply to ClientHello.
type ServerHello struct {
	ProtocolVersion uint16
	ConnectionID    string // Must equal the ClientHello's ConnectionID
	ClientID        string // Entity key of the local player in snapshots
	TickRate        uint16 // Simulation ticks per second, 0 if unspecified
	SnapshotRate    uint16 // Snapshots per second, 0 if unspecified
	ServerTick      uint32
	Motd            string
}

// JoinRequest asks the server to spawn the player into the match.
type JoinRequest struct {
	PlayerName string
	Team       uint8
	Loadout    uint8
}

// JoinAccept confirms a JoinRequest.
type JoinAccept struct {
	ClientID   string
	Team       uint8
	Spawn      Vec3
	ServerTick uint32
}

// MarshalClientHello encodes a ClientHello payload.
func MarshalClientHello(ch *ClientHello) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		connID := b.CreateString(ch.ConnectionID)
		name := createString(b, ch.PlayerName)
		build := createString(b, ch.ClientBuild)

		schema.ClientHelloStart(b)
		putUint16(b, schema.ClientHelloVTProtocolVersion, ch.ProtocolVersion)
		schema.ClientHelloAddConnectionId(b, connID)
		schema.ClientHelloAddPlayerName(b, name)
		schema.ClientHelloAddClientBuild(b, build)
		return schema.ClientHelloEnd(b)
	})
}

// BuildClientHello encodes a ClientHello and wraps it in an envelope.
func BuildClientHello(ch *ClientHello, msgSeq, serverSeqAck uint32) []byte {
	return EncodeEnvelope(MsgClientHello, MarshalClientHello(ch), msgSeq, serverSeqAck, ch.ProtocolVersion)
}

// ParseClientHello decodes and validates a ClientHello payload.
func ParseClientHello(payload []byte) (*ClientHello, error) {
	return parseTable(payload, func(buf []byte) (*ClientHello, error) {
		t := schema.GetRootAsClientHello(buf, 0)
		if err := requireFields(t.Table(), "ClientHello",
			schema.ClientHelloVTProtocolVersion,
			schema.ClientHelloVTConnectionId,
		); err != nil {
			return nil, err
		}

		connID, err := checkID("connection_id", t.ConnectionId(), true)
		if err != nil {
			return nil, err
		}
		name, err := checkText("player_name", t.PlayerName())
		if err != nil {
			return nil, err
		}
		build, err := checkText("client_build", t.ClientBuild())
		if err != nil {
			return nil, err
		}

		return &ClientHello{
			ProtocolVersion: t.ProtocolVersion(),
			ConnectionID:    connID,
			PlayerName:      name,
			ClientBuild:     build,
		}, nil
	})
}

// MarshalServerHello encodes a ServerHello payload.
func MarshalServerHello(sh *ServerHello) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		connID := b.CreateString(sh.ConnectionID)
		clientID := b.CreateString(sh.ClientID)
		motd := createString(b, sh.Motd)

		schema.ServerHelloStart(b)
		putUint16(b, schema.ServerHelloVTProtocolVersion, sh.ProtocolVersion)
		schema.ServerHelloAddConnectionId(b, connID)
		schema.ServerHelloAddClientId(b, clientID)
		schema.ServerHelloAddTickRate(b, sh.TickRate)
		schema.ServerHelloAddSnapshotRate(b, sh.SnapshotRate)
		schema.ServerHelloAddServerTick(b, sh.ServerTick)
		schema.ServerHelloAddMotd(b, motd)
		return schema.ServerHelloEnd(b)
	})
}

// BuildServerHello encodes a ServerHello and wraps it in an envelope.
func BuildServerHello(sh *ServerHello, msgSeq, serverSeqAck uint32) []byte {
	return EncodeEnvelope(MsgServerHello, MarshalServerHello(sh), msgSeq, serverSeqAck, sh.ProtocolVersion)
}

// ParseServerHello decodes and validates a ServerHello payload.
func ParseServerHello(payload []byte) (*ServerHello, error) {
	return parseTable(payload, func(buf []byte) (*ServerHello, error) {
		t := schema.GetRootAsServerHello(buf, 0)
		if err := requireFields(t.Table(), "ServerHello",
			schema.ServerHelloVTProtocolVersion,
			schema.ServerHelloVTConnectionId,
			schema.ServerHelloVTClientId,
		); err != nil {
			return nil, err
		}

		connID, err := checkID("connection_id", t.ConnectionId(), true)
		if err != nil {
			return nil, err
		}
		clientID, err := checkID("client_id", t.ClientId(), true)
		if err != nil {
			return nil, err
		}
		motd, err := checkText("motd", t.Motd())
		if err != nil {
			return nil, err
		}

		return &ServerHello{
			ProtocolVersion: t.ProtocolVersion(),
			ConnectionID:    connID,
			ClientID:        clientID,
			TickRate:        t.TickRate(),
			SnapshotRate:    t.SnapshotRate(),
			ServerTick:      t.ServerTick(),
			Motd:            motd,
		}, nil
	})
}

// MarshalJoinRequest encodes a JoinRequest payload.
func MarshalJoinRequest(jr *JoinRequest) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		name := b.CreateString(jr.PlayerName)

		schema.JoinRequestStart(b)
		schema.JoinRequestAddPlayerName(b, name)
		schema.JoinRequestAddTeam(b, jr.Team)
		schema.JoinRequestAddLoadout(b, jr.Loadout)
		return schema.JoinRequestEnd(b)
	})
}

// ParseJoinRequest decodes and validates a JoinRequest payload.
func ParseJoinRequest(payload []byte) (*JoinRequest, error) {
	return parseTable(payload, func(buf []byte) (*JoinRequest, error) {
		t := schema.GetRootAsJoinRequest(buf, 0)
		if err := requireFields(t.Table(), "JoinRequest", schema.JoinRequestVTPlayerName); err != nil {
			return nil, err
		}
		name, err := checkID("player_name", t.PlayerName(), true)
		if err != nil {
			return nil, err
		}
		return &JoinRequest{PlayerName: name, Team: t.Team(), Loadout: t.Loadout()}, nil
	})
}

// MarshalJoinAccept encodes a JoinAccept payload.
func MarshalJoinAccept(ja *JoinAccept) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		clientID := b.CreateString(ja.ClientID)

		schema.JoinAcceptStart(b)
		schema.JoinAcceptAddClientId(b, clientID)
		schema.JoinAcceptAddTeam(b, ja.Team)
		schema.JoinAcceptAddSpawnX(b, ja.Spawn.X)
		schema.JoinAcceptAddSpawnY(b, ja.Spawn.Y)
		schema.JoinAcceptAddSpawnZ(b, ja.Spawn.Z)
		schema.JoinAcceptAddServerTick(b, ja.ServerTick)
		return schema.JoinAcceptEnd(b)
	})
}

// ParseJoinAccept decodes and validates a JoinAccept payload.
func ParseJoinAccept(payload []byte) (*JoinAccept, error) {
	return parseTable(payload, func(buf []byte) (*JoinAccept, error) {
		t := schema.GetRootAsJoinAccept(buf, 0)
		if err := requireFields(t.Table(), "JoinAccept", schema.JoinAcceptVTClientId); err != nil {
			return nil, err
		}
		clientID, err := checkID("client_id", t.ClientId(), true)
		if err != nil {
			return nil, err
		}
		ja := &JoinAccept{
			ClientID:   clientID,
			Team:       t.Team(),
			Spawn:      Vec3{X: t.SpawnX(), Y: t.SpawnY(), Z: t.SpawnZ()},
			ServerTick: t.ServerTick(),
		}
		if err := checkVec3("spawn", ja.Spawn, MaxCoordinate); err != nil {
			return nil, err
		}
		return ja, nil
	})
}
