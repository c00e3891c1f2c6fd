package board_test

import (
	"testing"

	"github.com/herohde/morlock/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		pos, err := board.NewPosition([]board.Placement{
			{board.E1, board.White, board.King},
			{board.E8, board.Black, board.King},
			{board.A2, board.White, board.Pawn},
		}, board.White, board.ZeroCastling, board.ZeroSquare, 0, 1)
		require.NoError(t, err)

		c, p, ok := pos.Square(board.A2)
		assert.True(t, ok)
		assert.Equal(t, board.White, c)
		assert.Equal(t, board.Pawn, p)

		assert.True(t, pos.IsEmpty(board.A3))
	})

	t.Run("duplicate placement", func(t *testing.T) {
		_, err := board.NewPosition([]board.Placement{
			{board.E1, board.White, board.King},
			{board.E8, board.Black, board.King},
			{board.A2, board.White, board.Pawn},
			{board.A2, board.Black, board.Queen},
		}, board.White, board.ZeroCastling, board.ZeroSquare, 0, 1)
		assert.Error(t, err)
	})

	t.Run("missing king", func(t *testing.T) {
		_, err := board.NewPosition([]board.Placement{
			{board.E1, board.White, board.King},
		}, board.White, board.ZeroCastling, board.ZeroSquare, 0, 1)
		assert.Error(t, err)
	})

	t.Run("kings adjacent", func(t *testing.T) {
		_, err := board.NewPosition([]board.Placement{
			{board.E1, board.White, board.King},
			{board.E2, board.Black, board.King},
		}, board.White, board.ZeroCastling, board.ZeroSquare, 0, 1)
		assert.Error(t, err)
	})
}

func TestIsAttacked(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{board.E1, board.White, board.King},
		{board.E8, board.Black, board.King},
		{board.D3, board.White, board.Rook},
		{board.F5, board.Black, board.Knight},
	}, board.White, board.ZeroCastling, board.ZeroSquare, 0, 1)
	require.NoError(t, err)

	assert.True(t, pos.IsAttacked(board.D8, board.White)) // rook down the d-file, unobstructed
	assert.True(t, pos.IsAttacked(board.E3, board.Black)) // knight f5 covers e3
	assert.False(t, pos.IsAttacked(board.B1, board.Black))
}

func TestIsChecked(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{board.E1, board.White, board.King},
		{board.E8, board.Black, board.King},
		{board.E5, board.Black, board.Rook},
	}, board.White, board.ZeroCastling, board.ZeroSquare, 0, 1)
	require.NoError(t, err)

	assert.True(t, pos.IsChecked(board.White))
	assert.False(t, pos.IsChecked(board.Black))
}

func TestEnPassantCaptureLegal(t *testing.T) {
	t.Run("legal", func(t *testing.T) {
		pos, err := board.NewPosition([]board.Placement{
			{board.A1, board.White, board.King},
			{board.A8, board.Black, board.King},
			{board.E5, board.White, board.Pawn},
			{board.D5, board.Black, board.Pawn},
		}, board.White, board.ZeroCastling, board.D6, 0, 1)
		require.NoError(t, err)

		assert.True(t, pos.EnPassantCaptureLegal())
	})

	t.Run("no adjacent pawn", func(t *testing.T) {
		pos, err := board.NewPosition([]board.Placement{
			{board.A1, board.White, board.King},
			{board.A8, board.Black, board.King},
			{board.D5, board.Black, board.Pawn},
		}, board.White, board.ZeroCastling, board.D6, 0, 1)
		require.NoError(t, err)

		assert.False(t, pos.EnPassantCaptureLegal())
	})

	t.Run("pinned capturer", func(t *testing.T) {
		// White king on e5, black rook on a5; only the c5 and d5 pawns stand between them on the rank.
		pos, err := board.NewPosition([]board.Placement{
			{board.E5, board.White, board.King},
			{board.H8, board.Black, board.King},
			{board.A5, board.Black, board.Rook},
			{board.D5, board.White, board.Pawn},
			{board.C5, board.Black, board.Pawn},
		}, board.White, board.ZeroCastling, board.C6, 0, 1)
		require.NoError(t, err)

		// Capturing en passant would remove both the d5 pawn and expose e5 to the a5 rook along
		// the fifth rank -- illegal.
		assert.False(t, pos.EnPassantCaptureLegal())
	})
}
