package model

import (
	"encoding/json"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of *websocket.Conn a game writes to.
type Conn interface {
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // websocket.Conn allows one writer at a time
	sent        uint64     // newest state version written, guarded by writeMu
}

// Options configure a new game.
type Options struct {
	Owner      string
	Opponent   Opponent
	Difficulty Difficulty
	FEN        string
	AIDelay    time.Duration
	Seed       uint64
	// Schedule runs the computer's reply. It defaults to time.AfterFunc.
	Schedule AfterFunc
}

// AfterFunc runs f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timerAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	opts        Options
	start       Board
	startTurn   Color
	state       GameState
	connections *GameConnections
	rng         *rand.Rand
	generation  int
	version     uint64
	stopAI      func() bool
	after       AfterFunc
}

type GameState struct {
	ID             string         `json:"id"`
	Version        uint64         `json:"version"`
	Board          Board          `json:"board"`
	ToMove         Color          `json:"toMove"`
	IsCheck        bool           `json:"isCheck"`
	Selection      Selection      `json:"selection"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *Move          `json:"lastMove"`
	LastNotation   string         `json:"lastNotation"`
	Result         *Result        `json:"result"`
	Opponent       Opponent       `json:"opponent"`
	Difficulty     Difficulty     `json:"difficulty"`
	AIThinking     bool           `json:"aiThinking"`
	FEN            string         `json:"fen"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// NewGame sets up a game from opts. When the computer moves first its reply
// is scheduled straight away.
func NewGame(id string, opts Options) (*Game, error) {
	if opts.Opponent == "" {
		opts.Opponent = OpponentHuman
	}
	if opts.Difficulty == "" {
		opts.Difficulty = Easy
	}
	board, turn := NewBoard(), White
	if opts.FEN != "" {
		var err error
		board, turn, err = ParseFEN(opts.FEN)
		if err != nil {
			return nil, err
		}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g := &Game{
		ID:          id,
		opts:        opts,
		start:       board,
		startTurn:   turn,
		connections: NewGameConnections(),
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		after:       opts.Schedule,
	}
	if g.after == nil {
		g.after = timerAfterFunc
	}
	g.state = g.newGameState()
	log.Infof("game %s created: opponent=%s difficulty=%s toMove=%s", id, opts.Opponent, opts.Difficulty, turn)
	g.maybeScheduleAI()
	return g, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (g *Game) newGameState() GameState {
	state := GameState{
		ID:             g.ID,
		Board:          g.start,
		ToMove:         g.startTurn,
		IsCheck:        IsInCheck(g.start, g.startTurn),
		Selection:      NewSelection(),
		CapturedPieces: newCapturedPieces(),
		Result:         Outcome(g.start, g.startTurn),
		Opponent:       g.opts.Opponent,
		Difficulty:     g.opts.Difficulty,
		FEN:            g.start.FEN(g.startTurn),
	}
	state.Players.White = ClientPlayer{ID: g.opts.Owner, Color: White}
	state.Players.Black = ClientPlayer{ID: g.opts.Owner, Color: Black}
	if g.opts.Opponent == OpponentAI {
		state.Players.Black = ClientPlayer{ID: "computer", Color: aiColor, Computer: true}
	}
	state.AIThinking = g.aiToMoveLocked(state)
	return state
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// bumpLocked marks g.state as changed. Versions only grow, across restarts too.
func (g *Game) bumpLocked() {
	g.version++
	g.state.Version = g.version
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	return g.opts.Owner == "" || g.opts.Owner == playerID
}

// LegalTargets returns the squares the piece on sq may move to, for highlighting.
func (g *Game) LegalTargets(sq Square) []Square {
	g.mu.Lock()
	board := g.state.Board
	g.mu.Unlock()

	targets := LegalTargets(board, sq)
	if targets == nil {
		targets = []Square{}
	}
	return targets
}

// checkHumanTurnLocked rejects input that the owner may not give right now.
func (g *Game) checkHumanTurnLocked(playerID string) error {
	if !g.IsPlayerInGame(playerID) {
		return ErrNotOwner
	}
	if g.state.Result != nil {
		return ErrGameOver
	}
	if g.aiToMoveLocked(g.state) {
		return ErrWrongTurn
	}
	return nil
}

func (g *Game) aiToMoveLocked(state GameState) bool {
	return g.opts.Opponent == OpponentAI && state.ToMove == aiColor && state.Result == nil
}

// Select picks up the piece on sq for the side to move.
func (g *Game) Select(playerID string, sq Square) (Selection, error) {
	g.mu.Lock()
	if err := g.checkHumanTurnLocked(playerID); err != nil {
		g.mu.Unlock()
		return Selection{}, err
	}
	sel, err := g.state.Selection.Select(g.state.Board, g.state.ToMove, sq)
	if err != nil {
		g.mu.Unlock()
		return Selection{}, err
	}
	g.state.Selection = sel
	g.bumpLocked()
	g.mu.Unlock()

	go g.broadcastState(false)
	return sel, nil
}

func (g *Game) ClearSelection(playerID string) error {
	g.mu.Lock()
	if !g.IsPlayerInGame(playerID) {
		g.mu.Unlock()
		return ErrNotOwner
	}
	g.state.Selection = g.state.Selection.Clear()
	g.bumpLocked()
	g.mu.Unlock()

	go g.broadcastState(false)
	return nil
}

// CommitSelection moves the currently selected piece to sq.
func (g *Game) CommitSelection(playerID string, to Square) (Transition, error) {
	g.mu.Lock()
	if err := g.checkHumanTurnLocked(playerID); err != nil {
		g.mu.Unlock()
		return Transition{}, err
	}
	sel, t, err := g.state.Selection.Commit(g.state.Board, g.state.ToMove, to)
	if err != nil {
		g.mu.Unlock()
		return Transition{}, err
	}
	g.finishHumanMove(sel, t)
	return t, nil
}

// MakeMove selects and commits in one step, as a drag-and-drop does.
func (g *Game) MakeMove(playerID string, move WSMove) (Transition, error) {
	g.mu.Lock()
	if err := g.checkHumanTurnLocked(playerID); err != nil {
		g.mu.Unlock()
		return Transition{}, err
	}
	sel, err := NewSelection().Select(g.state.Board, g.state.ToMove, move.From)
	if err != nil {
		g.mu.Unlock()
		return Transition{}, err
	}
	sel, t, err := sel.Commit(g.state.Board, g.state.ToMove, move.To)
	if err != nil {
		g.mu.Unlock()
		return Transition{}, err
	}
	g.finishHumanMove(sel, t)
	return t, nil
}

// finishHumanMove must be called with g.mu held; it releases it.
func (g *Game) finishHumanMove(sel Selection, t Transition) {
	g.executeTransitionLocked(t)
	g.state.Selection = sel
	g.state.AIThinking = g.aiToMoveLocked(g.state)
	g.bumpLocked()
	g.mu.Unlock()

	go g.broadcastState(false)
	g.maybeScheduleAI()
}

func (g *Game) executeTransitionLocked(t Transition) {
	if !t.Captured.IsEmpty() {
		switch t.Move.Piece.Color {
		case White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, t.Captured)
		case Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, t.Captured)
		}
	}
	move := t.Move
	g.state.Board = t.Board
	g.state.ToMove = t.ToMove
	g.state.IsCheck = t.IsCheck
	g.state.LastMove = &move
	g.state.LastNotation = t.Notation
	g.state.Result = t.Result
	g.state.FEN = t.Board.FEN(t.ToMove)

	log.Infof("game %s: %s (%s)", g.ID, t.Notation, move)
	if t.Result != nil {
		log.Infof("game %s over: winner=%q reason=%s", g.ID, t.Result.Winner, t.Result.Reason)
	}
}

// maybeScheduleAI arms the AI reply if the computer is to move. It must be
// called without g.mu held.
func (g *Game) maybeScheduleAI() {
	g.mu.Lock()
	if !g.aiToMoveLocked(g.state) {
		g.mu.Unlock()
		return
	}
	gen := g.generation
	delay := g.opts.AIDelay
	g.mu.Unlock()

	stop := g.after(delay, func() { g.playAITurn(gen) })

	g.mu.Lock()
	if g.generation == gen {
		g.stopAI = stop
	}
	g.mu.Unlock()
}

// playAITurn makes the computer's move unless the game was restarted since gen.
func (g *Game) playAITurn(gen int) {
	g.mu.Lock()
	if gen != g.generation || !g.aiToMoveLocked(g.state) {
		g.mu.Unlock()
		return
	}
	move, ok := SelectAIMove(g.state.Board, aiColor, g.opts.Difficulty, g.rng)
	if !ok {
		g.state.AIThinking = false
		g.bumpLocked()
		g.mu.Unlock()
		go g.broadcastState(false)
		log.Warnf("game %s: computer has no legal move", g.ID)
		return
	}
	t, err := Play(g.state.Board, aiColor, move)
	if err != nil {
		g.state.AIThinking = false
		g.bumpLocked()
		g.mu.Unlock()
		go g.broadcastState(false)
		log.Errorf("game %s: computer chose rejected move %s: %v", g.ID, move, err)
		return
	}
	g.executeTransitionLocked(t)
	g.state.Selection = NewSelection()
	g.state.AIThinking = false
	g.stopAI = nil
	g.bumpLocked()
	g.mu.Unlock()

	go g.broadcastState(false)
}

// Restart discards the current board and returns to the starting position.
func (g *Game) Restart(playerID string) error {
	g.mu.Lock()
	if !g.IsPlayerInGame(playerID) {
		g.mu.Unlock()
		return ErrNotOwner
	}
	if g.stopAI != nil {
		g.stopAI()
		g.stopAI = nil
	}
	g.generation++
	g.state = g.newGameState()
	g.bumpLocked()
	g.mu.Unlock()

	log.Infof("game %s restarted", g.ID)
	go g.broadcastState(false)
	g.maybeScheduleAI()
	return nil
}

// Close cancels any pending computer move.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopAI != nil {
		g.stopAI()
		g.stopAI = nil
	}
	g.generation++
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	if !g.IsPlayerInGame(playerID) {
		return ErrNotOwner
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debugf("game %s: registered connection for player %s", g.ID, playerID)

	// The newcomer needs the current state even if everyone else has it.
	go g.broadcastState(true)
	return nil
}

// UnregisterConnection forgets conn, unless a newer connection has replaced it.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Debugf("game %s: unregistered connection for player %s", g.ID, playerID)
	}
}

// Send writes msg to playerID's connection, if there is one.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return nil
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

// broadcastState writes the game's current state to every connection. It reads
// the state only once it holds writeMu, so frames leave in version order and a
// caller whose change was already sent by a later call writes nothing. force
// resends the current version.
func (g *Game) broadcastState(force bool) {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	g.mu.Lock()
	state := g.state
	g.mu.Unlock()
	if !force && state.Version <= g.connections.sent {
		return
	}
	if state.Version > g.connections.sent {
		g.connections.sent = state.Version
	}

	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("game %s: marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}
