// Package uci encodes and decodes chess moves in pure coordinate notation ("long
// algebraic"), the move format used by the UCI engine protocol, e.g. "e2e4" or
// "a7a8q". A UCI token carries no board context -- decoding it against a position to
// recover its full Move (type, moving piece, capture) requires matching it by
// identity against that position's legal moves.
package uci

import (
	"github.com/herohde/morlock/pkg/board"
)

// Encode renders m in UCI coordinate notation: from-square, to-square, and a
// lowercase promotion letter if any.
func Encode(m board.Move) string {
	return m.String()
}

// Decode parses a UCI token against pos and returns the matching legal move, with
// Type/Piece/Capture filled in. Returns IllegalMove if no legal move has the same
// from, to and promotion.
func Decode(pos *board.Position, token string) (board.Move, error) {
	bare, err := board.ParseMove(token)
	if err != nil {
		return board.Move{}, board.WrapError(board.SyntaxError, err, "invalid UCI move: %v", token)
	}

	for _, m := range board.LegalMoves(pos) {
		if m.Equals(bare) {
			return m, nil
		}
	}
	return board.Move{}, board.NewError(board.IllegalMove, "%v is not legal in this position", token)
}
