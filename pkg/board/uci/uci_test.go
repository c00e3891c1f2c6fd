package uci_test

import (
	"testing"

	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/board/fen"
	"github.com/herohde/morlock/pkg/board/uci"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "e2e4", uci.Encode(board.Move{From: board.E2, To: board.E4}))
	assert.Equal(t, "a7a8q", uci.Encode(board.Move{From: board.A7, To: board.A8, Promotion: board.Queen}))
}

func TestDecode(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	m, err := uci.Decode(pos, "e2e4")
	require.NoError(t, err)
	assert.Equal(t, board.Jump, m.Type)
	assert.Equal(t, board.Pawn, m.Piece)
}

func TestDecodeIllegal(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	_, err = uci.Decode(pos, "e2e5") // pawn cannot jump two ranks from e2 to e5
	require.Error(t, err)

	var e *board.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, board.IllegalMove, e.Kind)
}

func TestDecodeMalformed(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	_, err = uci.Decode(pos, "z9z8")
	require.Error(t, err)

	var e *board.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, board.SyntaxError, e.Kind)
}
