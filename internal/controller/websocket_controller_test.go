package controller

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

func message(t *testing.T, typ ws.MessageType, payload any) ws.Message {
	t.Helper()
	if payload == nil {
		return ws.Message{Type: typ}
	}
	msg, err := ws.NewMessage(typ, payload)
	if err != nil {
		t.Fatal(err)
	}
	return msg
}

func TestHandleMessage(t *testing.T) {
	immediately := func(_ time.Duration, f func()) func() bool {
		f()
		return func() bool { return false }
	}
	gs := service.NewGameService(service.NewGameManager(), service.WithSchedule(immediately))
	gameID, err := gs.CreateGame("alice", service.CreateGameRequest{})
	if err != nil {
		t.Fatal(err)
	}
	wsc := NewWebSocketController(gs)

	e2, e4 := model.Square{Row: 6, Col: 4}, model.Square{Row: 4, Col: 4}
	e7, e5 := model.Square{Row: 1, Col: 4}, model.Square{Row: 3, Col: 4}

	// Steps run in order against one game.
	steps := []struct {
		name      string
		player    string
		msg       ws.Message
		wantErr   error
		anyErr    bool
		wantPhase model.Phase
	}{
		{name: "select", player: "alice", msg: message(t, ws.MessageTypeSelect, e2), wantPhase: model.PieceSelected},
		{name: "clear", player: "alice", msg: message(t, ws.MessageTypeClearSelection, nil), wantPhase: model.AwaitingSelection},
		{name: "commit without selection", player: "alice", msg: message(t, ws.MessageTypeCommit, e4), wantErr: model.ErrNoSelection},
		{name: "reselect", player: "alice", msg: message(t, ws.MessageTypeSelect, e2), wantPhase: model.PieceSelected},
		{name: "commit", player: "alice", msg: message(t, ws.MessageTypeCommit, e4), wantPhase: model.MoveCommitted},
		{name: "illegal move", player: "alice", msg: message(t, ws.MessageTypeMove, model.WSMove{From: e7, To: e4}), wantErr: model.ErrIllegalMove},
		{name: "other player", player: "mallory", msg: message(t, ws.MessageTypeMove, model.WSMove{From: e7, To: e5}), wantErr: model.ErrNotOwner},
		{name: "move", player: "alice", msg: message(t, ws.MessageTypeMove, model.WSMove{From: e7, To: e5}), wantPhase: model.MoveCommitted},
		{name: "bad payload", player: "alice", msg: ws.Message{Type: ws.MessageTypeSelect, Payload: json.RawMessage(`"e2"`)}, anyErr: true},
		{name: "unknown type", player: "alice", msg: ws.Message{Type: "resign"}, anyErr: true},
		{name: "restart", player: "alice", msg: message(t, ws.MessageTypeRestart, nil), wantPhase: model.AwaitingSelection},
	}
	for _, st := range steps {
		err := wsc.handleMessage(gameID, st.player, st.msg)
		switch {
		case st.wantErr != nil:
			if !errors.Is(err, st.wantErr) {
				t.Fatalf("%s: error = %v, want %v", st.name, err, st.wantErr)
			}
			continue
		case st.anyErr:
			if err == nil {
				t.Fatalf("%s: succeeded, want error", st.name)
			}
			continue
		case err != nil:
			t.Fatalf("%s: error = %v", st.name, err)
		}
		state, _ := gs.GetGameState(gameID)
		if state.Selection.Phase != st.wantPhase {
			t.Errorf("%s: phase = %q, want %q", st.name, state.Selection.Phase, st.wantPhase)
		}
	}

	state, _ := gs.GetGameState(gameID)
	if state.Board != model.NewBoard() || state.LastMove != nil {
		t.Error("restart message did not reset the board")
	}
}

func TestHandleMessageUnknownGame(t *testing.T) {
	wsc := NewWebSocketController(service.NewGameService(service.NewGameManager()))
	msg := ws.Message{Type: ws.MessageTypeRestart}
	if err := wsc.handleMessage("missing", "alice", msg); !errors.Is(err, service.ErrGameNotFound) {
		t.Errorf("error = %v, want ErrGameNotFound", err)
	}
}
