package fen_test

import (
	"testing"

	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundtrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/1PB1P1b1/P1NP1N2/2P1QPPP/R4RK1 b - b3 0 10",
		"8/8/8/3k4/8/8/3PK3/8 w - - 0 1",
	}

	for _, tt := range tests {
		p, err := fen.Decode(tt)
		require.NoError(t, err)

		assert.Equal(t, tt, fen.Encode(p))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",    // too few sections
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",  // bad active color
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",  // bad castling letter
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", // bad en passant square
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", // negative halfmove
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",  // fullmove < 1
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",   // short rank
		"4k3/8/8/8/8/8/8/4K2K w - - 0 1",                           // two white kings
	}

	for _, tt := range tests {
		_, err := fen.Decode(tt)
		assert.Error(t, err, "expected error for: %v", tt)
	}
}

func TestDecodeLegalMoveCountAndRoundtrip(t *testing.T) {
	const f = "2R5/4bppk/1p1p3Q/5R1P/4P3/5P2/r4q1P/7K b - - 6 50"

	p, err := fen.Decode(f)
	require.NoError(t, err)
	assert.Len(t, board.LegalMoves(p), 2)
	assert.Equal(t, f, fen.Encode(p))
}

func TestDecodeRejectsCheckOnSideNotToMove(t *testing.T) {
	// White is to move, yet black (not to move) sits in check from the rook --
	// illegal per the "side not to move may not be in check" invariant.
	_, err := fen.Decode("4k3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	assert.Error(t, err)

	var e *board.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, board.SemanticError, e.Kind)
}

func TestDecodeRejectsPawnOnBackRank(t *testing.T) {
	tests := []string{
		"4k2P/8/8/8/8/8/8/4K3 w - - 0 1", // white pawn on rank 8
		"p3k3/8/8/8/8/8/8/4K3 w - - 0 1", // black pawn on rank 8
		"4k3/8/8/8/8/8/8/P3K3 w - - 0 1", // white pawn on rank 1
	}

	for _, tt := range tests {
		_, err := fen.Decode(tt)
		require.Error(t, err, "expected error for: %v", tt)

		var e *board.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, board.SemanticError, e.Kind)
	}
}

func TestDecodeRejectsCastlingWithoutHomeSquare(t *testing.T) {
	tests := []string{
		"4k3/8/8/8/8/8/8/4K2R w KQ - 0 1", // no queenside rook
		"4k3/8/8/8/8/8/8/R3K3 w KQ - 0 1", // no kingside rook
		"4k3/8/8/8/8/8/4K3/7R w K - 0 1",  // king displaced off e1
		"5k1r/8/8/8/8/8/8/4K3 w k - 0 1",  // black king displaced off e8
	}

	for _, tt := range tests {
		_, err := fen.Decode(tt)
		require.Error(t, err, "expected error for: %v", tt)

		var e *board.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, board.SemanticError, e.Kind)
	}
}

func TestDecodeRejectsCastlingOutOfOrderOrDuplicate(t *testing.T) {
	tests := []string{
		"r3k2r/8/8/8/8/8/8/R3K2R w qkQK - 0 1", // out of canonical order
		"r3k2r/8/8/8/8/8/8/R3K2R w KK - 0 1",   // duplicate
	}

	for _, tt := range tests {
		_, err := fen.Decode(tt)
		require.Error(t, err, "expected error for: %v", tt)

		var e *board.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, board.SyntaxError, e.Kind)
	}
}

func TestDecodeRejectsEnPassantInconsistentWithDoubleStep(t *testing.T) {
	tests := []string{
		"4k3/8/8/8/8/8/8/4K3 w - e3 0 1",   // wrong rank for white to move
		"4k3/8/8/8/8/8/8/4K3 w - e6 0 1",   // right rank, but no black pawn behind it
		"4k3/8/8/8/4p3/8/8/4K3 b - e3 0 1", // right rank, but pawn behind it is the wrong color
	}

	for _, tt := range tests {
		_, err := fen.Decode(tt)
		require.Error(t, err, "expected error for: %v", tt)

		var e *board.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, board.SemanticError, e.Kind)
	}
}

func TestDecodeAcceptsConsistentEnPassant(t *testing.T) {
	p, err := fen.Decode("4k3/8/8/8/3Pp3/8/8/4K3 b - d3 0 1")
	require.NoError(t, err)

	sq, ok := p.EnPassant()
	require.True(t, ok)
	assert.Equal(t, board.D3, sq)
}
