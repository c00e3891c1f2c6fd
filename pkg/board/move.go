package board

import "fmt"

// MoveType indicates the type of move. The no-progress counter is reset with any pawn
// move or capture, i.e., any move that is not Normal, KingSideCastle or QueenSideCastle.
type MoveType uint8

const (
	Normal    MoveType = iota
	Push               // Pawn single push
	Jump               // Pawn double push
	EnPassant          // Implicitly a pawn capture
	QueenSideCastle
	KingSideCastle
	Capture
	Promotion
	CapturePromotion
)

// Move represents a not-necessarily-legal move along with contextual metadata needed
// to apply and unapply it against a Position.
type Move struct {
	Type      MoveType
	From, To  Square
	Piece     Piece // piece that moved, from the position it was generated against.
	Promotion Piece // desired piece for promotion, if any.
	Capture   Piece // captured piece, if any.
}

// ParseMove parses a move in pure algebraic coordinate notation (the "UCI" long
// algebraic form), such as "a2a4" or "a7a8q". The parsed move carries no contextual
// information like castling, en passant or the moving piece: that is only known
// relative to a position. See package uci for decoding against a position.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || !promo.IsPromotable() {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}

	return Move{From: from, To: to}, nil
}

// Equals compares moves by their UCI-visible identity: from, to and promotion. Two
// moves generated against different positions with the same identity are the same
// move for all external purposes, even if Type/Piece/Capture differ.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// IsCapture returns true iff the move removes an enemy piece from the board, including en passant.
func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == EnPassant || m.Type == CapturePromotion
}

// IsCastle returns true iff the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Type == KingSideCastle || m.Type == QueenSideCastle
}

// EnPassantCapture returns the square of the pawn captured en passant, if the move is
// of type EnPassant.
func (m Move) EnPassantCapture() (Square, bool) {
	if m.Type != EnPassant {
		return ZeroSquare, false
	}
	return NewSquare(m.To.File(), m.From.Rank()), true
}

// EnPassantTarget returns the square "jumped over", to be recorded as the new en
// passant target, if the move is a double pawn push.
func (m Move) EnPassantTarget() (Square, bool) {
	if m.Type != Jump {
		return ZeroSquare, false
	}
	mid := (m.From.Rank().V() + m.To.Rank().V()) / 2
	return NewSquare(m.From.File(), Rank(mid)), true
}

// CastlingRookMove returns the rook's from/to squares for a castling move.
func (m Move) CastlingRookMove() (from, to Square, ok bool) {
	rank := m.From.Rank()
	switch m.Type {
	case KingSideCastle:
		return NewSquare(FileH, rank), NewSquare(FileF, rank), true
	case QueenSideCastle:
		return NewSquare(FileA, rank), NewSquare(FileD, rank), true
	default:
		return ZeroSquare, ZeroSquare, false
	}
}

// CastlingRightsLost returns the castling rights that are permanently lost as a side
// effect of this move touching a king or rook home square, either as the piece that
// moved or as the square a piece was captured on.
func (m Move) CastlingRightsLost() Castling {
	var lost Castling
	lost |= castlingRightsAt(m.From)
	lost |= castlingRightsAt(m.To)
	return lost
}

func castlingRightsAt(sq Square) Castling {
	switch sq {
	case E1:
		return WhiteKingSideCastle | WhiteQueenSideCastle
	case E8:
		return BlackKingSideCastle | BlackQueenSideCastle
	case A1:
		return WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A8:
		return BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	default:
		return 0
	}
}
