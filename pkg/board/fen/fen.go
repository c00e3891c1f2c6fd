// Package fen reads and writes board.Position values in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/morlock/pkg/board"
)

const (
	// Initial is the FEN of the standard chess starting position.
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode parses a position from its FEN representation. A FEN record has six
// space-separated fields: piece placement, active color, castling availability, en
// passant target, halfmove clock and fullmove number.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (*board.Position, error) {
	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, board.NewError(board.SyntaxError, "invalid number of sections in FEN: '%v'", fen)
	}

	// (1) Piece placement, rank 8 down to rank 1, file a through file h within a rank.
	pieces, err := decodePlacement(parts[0])
	if err != nil {
		return nil, board.WrapError(board.SyntaxError, err, "invalid placement in FEN: '%v'", fen)
	}

	// (2) Active color.
	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, board.NewError(board.SyntaxError, "invalid active color in FEN: '%v'", fen)
	}

	// (3) Castling availability.
	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, board.NewError(board.SyntaxError, "invalid castling in FEN: '%v'", fen)
	}

	// (4) En passant target square, if a pawn just made a double push.
	var ep board.Square
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, board.WrapError(board.SyntaxError, err, "invalid en passant in FEN: '%v'", fen)
		}
		ep = sq
	}

	// (5) Halfmove clock, plies since the last pawn move or capture.
	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, board.NewError(board.SyntaxError, "invalid halfmove clock in FEN: '%v'", fen)
	}

	// (6) Fullmove number, starting at 1 and incrementing after Black's move.
	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, board.NewError(board.SyntaxError, "invalid fullmove number in FEN: '%v'", fen)
	}

	pos, err := board.NewPosition(pieces, turn, castling, ep, halfmove, fullmove)
	if err != nil {
		return nil, board.WrapError(board.SemanticError, err, "invalid position in FEN: '%v'", fen)
	}
	if pos.IsChecked(turn.Opponent()) {
		return nil, board.NewError(board.SemanticError, "side not to move is in check in FEN: '%v'", fen)
	}
	if err := validateCastling(pos, castling); err != nil {
		return nil, board.WrapError(board.SemanticError, err, "invalid castling in FEN: '%v'", fen)
	}
	if ep != board.ZeroSquare {
		if err := validateEnPassant(pos, turn, ep); err != nil {
			return nil, board.WrapError(board.SemanticError, err, "invalid en passant in FEN: '%v'", fen)
		}
	}
	return pos, nil
}

// decodePlacement parses the first FEN field into placements.
func decodePlacement(field string) ([]board.Placement, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != int(board.NumRanks) {
		return nil, fmt.Errorf("expected %v ranks, got %v", board.NumRanks, len(ranks))
	}

	var pieces []board.Placement
	for i, rank := range ranks {
		r := board.Rank8 - board.Rank(i)

		f := board.ZeroFile
		for _, ch := range []rune(rank) {
			switch {
			case unicode.IsDigit(ch):
				f += board.File(ch - '0')

			case unicode.IsLetter(ch):
				if f >= board.NumFiles {
					return nil, fmt.Errorf("too many squares in rank: '%v'", rank)
				}
				color, piece, ok := parsePiece(ch)
				if !ok {
					return nil, fmt.Errorf("invalid piece '%v'", ch)
				}
				pieces = append(pieces, board.Placement{Square: board.NewSquare(f, r), Color: color, Piece: piece})
				f++

			default:
				return nil, fmt.Errorf("invalid character '%v' in rank", ch)
			}
		}
		if f != board.NumFiles {
			return nil, fmt.Errorf("rank does not sum to %v files: '%v'", board.NumFiles, rank)
		}
	}
	return pieces, nil
}

// Encode renders pos in FEN notation.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for r := board.Rank8; ; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.Square(board.NewSquare(f, r))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r == board.Rank1 {
			break
		}
		sb.WriteString("/")
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(pos.Turn()), printCastling(pos.Castling()), ep, pos.HalfmoveClock(), pos.FullmoveNumber())
}

// castlingOrder is the canonical KQkq field order: a subset of these runes, in this
// order, with no repeats.
var castlingOrder = []struct {
	r     rune
	right board.Castling
}{
	{'K', board.WhiteKingSideCastle},
	{'Q', board.WhiteQueenSideCastle},
	{'k', board.BlackKingSideCastle},
	{'q', board.BlackQueenSideCastle},
}

func parseCastling(str string) (board.Castling, bool) {
	if str == "-" {
		return board.ZeroCastling, true
	}

	var ret board.Castling
	i := 0
	for _, r := range []rune(str) {
		for i < len(castlingOrder) && castlingOrder[i].r != r {
			i++
		}
		if i == len(castlingOrder) {
			return 0, false // out of canonical order, duplicate, or unknown rune.
		}
		ret |= castlingOrder[i].right
		i++
	}
	return ret, true
}

// validateCastling rejects castling rights asserted for a king or rook that is not
// actually on its home square.
func validateCastling(pos *board.Position, c board.Castling) error {
	checks := []struct {
		right board.Castling
		color board.Color
		king  board.Square
		rook  board.Square
	}{
		{board.WhiteKingSideCastle, board.White, board.E1, board.H1},
		{board.WhiteQueenSideCastle, board.White, board.E1, board.A1},
		{board.BlackKingSideCastle, board.Black, board.E8, board.H8},
		{board.BlackQueenSideCastle, board.Black, board.E8, board.A8},
	}

	for _, chk := range checks {
		if !c.IsAllowed(chk.right) {
			continue
		}
		if color, piece, ok := pos.Square(chk.king); !ok || color != chk.color || piece != board.King {
			return fmt.Errorf("castling right %v asserted without king on home square", chk.right)
		}
		if color, piece, ok := pos.Square(chk.rook); !ok || color != chk.color || piece != board.Rook {
			return fmt.Errorf("castling right %v asserted without rook on home square", chk.right)
		}
	}
	return nil
}

// validateEnPassant rejects an en passant target inconsistent with the implied
// double-stepped pawn: the target must sit on rank 6 when White is to move (Black
// just double-pushed) or rank 3 when Black is to move (White just double-pushed),
// with the double-stepped pawn of the opposite color sitting directly behind it.
func validateEnPassant(pos *board.Position, turn board.Color, ep board.Square) error {
	var wantRank board.Rank
	var pawnRank board.Rank
	var pawnColor board.Color
	if turn == board.White {
		wantRank, pawnRank, pawnColor = board.Rank6, board.Rank5, board.Black
	} else {
		wantRank, pawnRank, pawnColor = board.Rank3, board.Rank4, board.White
	}

	if ep.Rank() != wantRank {
		return fmt.Errorf("en passant target '%v' inconsistent with side to move", ep)
	}

	pawnSq := board.NewSquare(ep.File(), pawnRank)
	if color, piece, ok := pos.Square(pawnSq); !ok || color != pawnColor || piece != board.Pawn {
		return fmt.Errorf("en passant target '%v' has no double-stepped pawn behind it", ep)
	}
	return nil
}

func printCastling(c board.Castling) string {
	if c == board.ZeroCastling {
		return "-"
	}

	var sb strings.Builder
	if c.IsAllowed(board.WhiteKingSideCastle) {
		sb.WriteString("K")
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		sb.WriteString("Q")
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		sb.WriteString("k")
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		sb.WriteString("q")
	}
	return sb.String()
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	color := board.White
	if unicode.IsLower(r) {
		color = board.Black
	}

	switch unicode.ToUpper(r) {
	case 'P':
		return color, board.Pawn, true
	case 'N':
		return color, board.Knight, true
	case 'B':
		return color, board.Bishop, true
	case 'R':
		return color, board.Rook, true
	case 'Q':
		return color, board.Queen, true
	case 'K':
		return color, board.King, true
	default:
		return 0, 0, false
	}
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}
