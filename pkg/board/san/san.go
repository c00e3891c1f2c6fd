// Package san encodes and decodes chess moves in Standard Algebraic Notation,
// relative to the board.Position they are played from.
package san

import (
	"strings"

	"github.com/herohde/morlock/pkg/board"
)

// Encode renders m, which must be legal in pos, as a SAN token -- including the
// trailing '+' or '#' check/checkmate marker.
func Encode(pos *board.Position, m board.Move) (string, error) {
	legal := board.LegalMoves(pos)

	matched, ok := find(legal, m)
	if !ok {
		return "", board.NewError(board.IllegalMove, "%v is not legal in this position", m)
	}
	m = matched

	var sb strings.Builder
	switch {
	case m.IsCastle():
		if m.Type == board.KingSideCastle {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}

	case m.Piece == board.Pawn:
		if m.IsCapture() {
			sb.WriteString(m.From.File().String())
			sb.WriteRune('x')
		}
		sb.WriteString(m.To.String())
		if m.Promotion.IsValid() {
			sb.WriteRune('=')
			sb.WriteString(strings.ToUpper(m.Promotion.String()))
		}

	default:
		sb.WriteString(strings.ToUpper(m.Piece.String()))
		sb.WriteString(disambiguate(legal, m))
		if m.IsCapture() {
			sb.WriteRune('x')
		}
		sb.WriteString(m.To.String())
	}

	next := board.Apply(pos, m)
	if next.IsChecked(next.Turn()) {
		if len(board.LegalMoves(next)) == 0 {
			sb.WriteRune('#')
		} else {
			sb.WriteRune('+')
		}
	}

	return sb.String(), nil
}

// Decode parses a SAN token against pos and returns the single legal move it denotes.
// Trailing check/mate/annotation punctuation ('+', '#', '!', '?') is ignored.
func Decode(pos *board.Position, token string) (board.Move, error) {
	s := strings.TrimRight(token, "+#!?")
	legal := board.LegalMoves(pos)

	switch s {
	case "O-O", "0-0":
		return matchOne(legal, func(m board.Move) bool { return m.Type == board.KingSideCastle })
	case "O-O-O", "0-0-0":
		return matchOne(legal, func(m board.Move) bool { return m.Type == board.QueenSideCastle })
	}

	piece := board.Pawn
	rest := s
	if len(rest) > 0 && rest[0] >= 'A' && rest[0] <= 'Z' {
		p, ok := board.ParsePiece(rune(rest[0]))
		if !ok {
			return board.Move{}, board.NewError(board.SyntaxError, "invalid piece letter in SAN: %v", token)
		}
		piece = p
		rest = rest[1:]
	}

	promotion := board.NoPiece
	if idx := strings.IndexByte(rest, '='); idx >= 0 {
		if idx+1 >= len(rest) {
			return board.Move{}, board.NewError(board.SyntaxError, "malformed promotion in SAN: %v", token)
		}
		p, ok := board.ParsePiece(rune(rest[idx+1]))
		if !ok || !p.IsPromotable() {
			return board.Move{}, board.NewError(board.SyntaxError, "invalid promotion in SAN: %v", token)
		}
		promotion = p
		rest = rest[:idx]
	}

	rest = strings.ReplaceAll(rest, "x", "")
	if len(rest) < 2 {
		return board.Move{}, board.NewError(board.SyntaxError, "malformed SAN: %v", token)
	}

	to, err := board.ParseSquareStr(rest[len(rest)-2:])
	if err != nil {
		return board.Move{}, board.WrapError(board.SyntaxError, err, "invalid destination in SAN: %v", token)
	}
	disambig := rest[:len(rest)-2]

	var fileHint *board.File
	var rankHint *board.Rank
	for _, r := range disambig {
		if f, ok := board.ParseFile(r); ok {
			fileHint = &f
		} else if rk, ok := board.ParseRank(r); ok {
			rankHint = &rk
		} else {
			return board.Move{}, board.NewError(board.SyntaxError, "invalid disambiguation in SAN: %v", token)
		}
	}

	var candidates []board.Move
	for _, m := range legal {
		if m.Piece != piece || m.To != to || m.Promotion != promotion {
			continue
		}
		if fileHint != nil && m.From.File() != *fileHint {
			continue
		}
		if rankHint != nil && m.From.Rank() != *rankHint {
			continue
		}
		candidates = append(candidates, m)
	}

	switch len(candidates) {
	case 0:
		return board.Move{}, board.NewError(board.UnknownSAN, "no legal move matches SAN: %v", token)
	case 1:
		return candidates[0], nil
	default:
		return board.Move{}, board.NewError(board.AmbiguousSAN, "SAN matches more than one legal move: %v", token)
	}
}

func find(legal []board.Move, m board.Move) (board.Move, bool) {
	for _, lm := range legal {
		if lm.Equals(m) {
			return lm, true
		}
	}
	return board.Move{}, false
}

func matchOne(legal []board.Move, pred func(board.Move) bool) (board.Move, error) {
	var found []board.Move
	for _, m := range legal {
		if pred(m) {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return board.Move{}, board.NewError(board.UnknownSAN, "no legal castling move available")
	case 1:
		return found[0], nil
	default:
		return board.Move{}, board.NewError(board.AmbiguousSAN, "ambiguous castling move")
	}
}

// disambiguate returns the minimal from-square hint needed to distinguish m from any
// other legal move of the same piece to the same destination: empty if none is
// needed, else the from-file, from-rank, or full from-square, per SAN's precedence.
func disambiguate(legal []board.Move, m board.Move) string {
	var ambigs []board.Move
	for _, o := range legal {
		if o.Piece == m.Piece && o.To == m.To && o.From != m.From {
			ambigs = append(ambigs, o)
		}
	}
	if len(ambigs) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, o := range ambigs {
		if o.From.File() == m.From.File() {
			sameFile = true
		}
		if o.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	switch {
	case !sameFile:
		return m.From.File().String()
	case !sameRank:
		return m.From.Rank().String()
	default:
		return m.From.String()
	}
}
