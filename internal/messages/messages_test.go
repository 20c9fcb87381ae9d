package messages

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blitzarena/chess-server/pkg/board"
)

func TestInboundEnvelopeDecode(t *testing.T) {
	raw := []byte(`{"type":"MAKE_MOVE","payload":{"session_id":"abc","from":"e2","to":"e4"}}`)

	var msg InboundMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, TypeMakeMove, msg.Type)

	var payload MakeMovePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "abc", payload.SessionID)
	assert.Equal(t, "e2", payload.From)
	assert.Equal(t, "e4", payload.To)
}

func TestInboundMissingPayload(t *testing.T) {
	var msg InboundMessage
	require.NoError(t, json.Unmarshal([]byte(`{"type":"FIND_MATCH"}`), &msg))
	assert.Equal(t, TypeFindMatch, msg.Type)
	assert.Nil(t, msg.Payload)
}

func TestOutboundEnvelopeEncode(t *testing.T) {
	out := OutboundMessage{
		Event: EventSessionOver,
		Payload: SessionOverPayload{
			SessionID: "abc",
			Winner:    "white",
			Reason:    "checkmate",
		},
	}

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded struct {
		Event   string             `json:"event"`
		Payload SessionOverPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, EventSessionOver, decoded.Event)
	assert.Equal(t, "white", decoded.Payload.Winner)
	assert.Equal(t, "checkmate", decoded.Payload.Reason)
}

func TestSessionStateRoundtripsBoard(t *testing.T) {
	state := SessionStatePayload{
		SessionID: "abc",
		Board:     board.StartingPosition(),
		Turn:      "white",
	}

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded SessionStatePayload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, board.StartingPosition(), decoded.Board)
	assert.Equal(t, "white", decoded.Turn)
}
