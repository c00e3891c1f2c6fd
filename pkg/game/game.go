// Package game implements the stateful chess game: a Position history, automatic
// and claimable draw detection, and the PGN movetext a played-out game produces.
package game

import (
	"fmt"

	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/board/san"
)

const (
	repetition3Limit  = 3
	repetition5Limit  = 5
	noprogress50Limit = 100 // plies
	noprogress75Limit = 150 // plies
)

// record is one entry in a Game's history: the position reached, its repetition key,
// and -- for every entry but the first -- the move that produced it and its SAN.
type record struct {
	pos  *board.Position
	hash board.ZobristHash
	move board.Move
	san  string
}

// Option configures a Game at construction time.
type Option func(*Game)

// WithZobristTable overrides the table used for repetition keys. Games compared for
// repetition must share a table, or use tables built with the same seed.
func WithZobristTable(zt *board.ZobristTable) Option {
	return func(g *Game) { g.zt = zt }
}

// Game is a chess game: an append-only history of positions reached by playing legal
// moves, plus the result -- decided automatically (checkmate, stalemate, insufficient
// material, fivefold repetition, seventy-five-move rule) or by claim (threefold
// repetition, fifty-move rule). Not thread-safe.
type Game struct {
	zt      *board.ZobristTable
	history []record
	reps    map[board.ZobristHash]int
	result  Result
}

// NewGame starts a game from the given position.
func NewGame(pos *board.Position, opts ...Option) *Game {
	g := &Game{zt: board.NewZobristTable(1)}
	for _, opt := range opts {
		opt(g)
	}

	hash := g.zt.Hash(pos)
	g.history = []record{{pos: pos, hash: hash}}
	g.reps = map[board.ZobristHash]int{hash: 1}
	g.result = g.computeResult(pos, hash)
	return g
}

// Position returns the current position.
func (g *Game) Position() *board.Position {
	return g.history[len(g.history)-1].pos
}

// Result returns the game's result. Outcome is Undecided while the game is ongoing.
func (g *Game) Result() Result {
	return g.result
}

// IsOver returns true iff the game has a decided or claimed result.
func (g *Game) IsOver() bool {
	return g.result.Outcome != Undecided
}

// LegalMoves returns the legal moves in the current position. Empty if the game is over.
func (g *Game) LegalMoves() []board.Move {
	if g.IsOver() {
		return nil
	}
	return board.LegalMoves(g.Position())
}

// InCheck returns true iff the side to move is in check.
func (g *Game) InCheck() bool {
	pos := g.Position()
	return pos.IsChecked(pos.Turn())
}

// CanClaimThreefoldRepetition returns true iff the current position has occurred
// (by repetition key) three or more times across the game.
func (g *Game) CanClaimThreefoldRepetition() bool {
	return g.reps[g.history[len(g.history)-1].hash] >= repetition3Limit
}

// CanClaimFiftyMoveRule returns true iff 50 full moves (100 plies) have passed since
// the last pawn move or capture.
func (g *Game) CanClaimFiftyMoveRule() bool {
	return g.Position().HalfmoveClock() >= noprogress50Limit
}

// ClaimThreefoldRepetition ends the game in a draw if the claim is currently valid.
func (g *Game) ClaimThreefoldRepetition() error {
	if !g.CanClaimThreefoldRepetition() {
		return board.NewError(board.BadClaim, "threefold repetition is not available in this position")
	}
	g.result = DrawBy(Repetition3)
	return nil
}

// ClaimFiftyMoveRule ends the game in a draw if the claim is currently valid.
func (g *Game) ClaimFiftyMoveRule() error {
	if !g.CanClaimFiftyMoveRule() {
		return board.NewError(board.BadClaim, "fifty-move rule is not available in this position")
	}
	g.result = DrawBy(NoProgress50)
	return nil
}

// Resign ends the game with the given color losing by resignation.
func (g *Game) Resign(c board.Color) {
	g.result = Loss(c, Resignation)
}

// AgreeDraw ends the game in a draw by agreement between the players, e.g. when
// importing a PGN whose Result tag is "1/2-1/2" but the movetext does not itself
// reach a terminal position.
func (g *Game) AgreeDraw() {
	g.result = DrawBy(Agreement)
}

// MakeMove plays m, which must be legal in the current position (matched by UCI
// identity: from, to and promotion -- Type/Piece/Capture are filled in from the
// matching legal move). Returns IllegalMove if no legal move matches, or GameOver if
// the game already has a result.
func (g *Game) MakeMove(m board.Move) error {
	if g.IsOver() {
		return board.NewError(board.GameOver, "game already over: %v", g.result)
	}

	pos := g.Position()
	legal := board.LegalMoves(pos)

	var matched board.Move
	found := false
	for _, lm := range legal {
		if lm.Equals(m) {
			matched = lm
			found = true
			break
		}
	}
	if !found {
		return board.NewError(board.IllegalMove, "%v is not legal in this position", m)
	}

	text, err := san.Encode(pos, matched)
	if err != nil {
		return err // unreachable: matched came from LegalMoves against pos.
	}

	next := board.Apply(pos, matched)
	hash := g.zt.Hash(next)

	g.history = append(g.history, record{pos: next, hash: hash, move: matched, san: text})
	g.reps[hash]++
	g.result = g.computeResult(next, hash)
	return nil
}

// History returns the moves played so far, in order.
func (g *Game) History() []board.Move {
	out := make([]board.Move, 0, len(g.history)-1)
	for _, r := range g.history[1:] {
		out = append(out, r.move)
	}
	return out
}

// MoveText renders the moves played so far as space-separated SAN tokens, without
// move numbers -- package pgn adds those when assembling a full PGN document.
func (g *Game) MoveText() string {
	var out string
	for i, r := range g.history[1:] {
		if i > 0 {
			out += " "
		}
		out += r.san
	}
	return out
}

func (g *Game) computeResult(pos *board.Position, hash board.ZobristHash) Result {
	legal := board.LegalMoves(pos)

	switch {
	case pos.IsChecked(pos.Turn()) && len(legal) == 0:
		return Loss(pos.Turn(), Checkmate)
	case g.reps[hash] >= repetition5Limit:
		return DrawBy(Repetition5)
	case pos.HalfmoveClock() >= noprogress75Limit:
		return DrawBy(NoProgress75)
	case len(legal) == 0:
		return DrawBy(Stalemate)
	case hasInsufficientMaterial(pos):
		return DrawBy(InsufficientMaterial)
	default:
		return Result{Outcome: Undecided}
	}
}

func hasInsufficientMaterial(pos *board.Position) bool {
	var pieces []struct {
		kind board.Piece
		sq   board.Square
	}
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		if _, p, ok := pos.Square(sq); ok && p != board.King {
			pieces = append(pieces, struct {
				kind board.Piece
				sq   board.Square
			}{p, sq})
		}
	}

	switch len(pieces) {
	case 0:
		return true // K vs K
	case 1:
		return pieces[0].kind == board.Knight || pieces[0].kind == board.Bishop // K+minor vs K
	}

	// K+bishop(s) vs K+bishop(s), all bishops confined to the same color complex.
	for _, p := range pieces {
		if p.kind != board.Bishop {
			return false
		}
	}
	complex := squareComplex(pieces[0].sq)
	for _, p := range pieces[1:] {
		if squareComplex(p.sq) != complex {
			return false
		}
	}
	return true
}

func squareComplex(sq board.Square) int {
	return (sq.File().V() + sq.Rank().V()) % 2
}

func (g *Game) String() string {
	return fmt.Sprintf("game{pos=%v, result=%v, moves=%v}", g.Position(), g.result, g.MoveText())
}
