package board

// PseudoLegalMoves enumerates every move available to the side to move that obeys
// piece movement and occupancy rules, without regard to whether it leaves the
// mover's own king in check. See LegalMoves for the king-safety-filtered set.
func PseudoLegalMoves(pos *Position) []Move {
	turn := pos.turn
	opp := turn.Opponent()

	ownOcc := pos.pieces[turn][NoPiece]
	oppOcc := pos.pieces[opp][NoPiece]
	all := ownOcc | oppOcc

	var out []Move

	for bb := pos.pieces[turn][Pawn]; bb != 0; {
		sq := bb.LastPopSquare()
		bb &^= BitMask(sq)
		genPawnMoves(pos, turn, sq, all, oppOcc, &out)
	}

	for _, piece := range [4]Piece{Knight, Bishop, Rook, Queen} {
		genPieceMoves(pos, turn, piece, all, ownOcc, oppOcc, &out)
	}
	genPieceMoves(pos, turn, King, all, ownOcc, oppOcc, &out)
	genCastling(pos, turn, all, &out)

	return out
}

// LegalMoves enumerates every pseudo-legal move that does not leave the mover's own
// king in check after being applied. This is the only check-handling mechanism this
// library needs; there is no separate "moves while in check" generator.
func LegalMoves(pos *Position) []Move {
	turn := pos.turn
	pseudo := PseudoLegalMoves(pos)

	out := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		next := Apply(pos, m)
		kingSq := next.pieces[turn][King].LastPopSquare()
		if !next.IsAttacked(kingSq, turn.Opponent()) {
			out = append(out, m)
		}
	}
	return out
}

// Apply returns the Position that results from playing m against pos. It does not
// check legality; callers that need legality enforced should use m ∈ LegalMoves(pos)
// as the precondition, per the IllegalMove error in package game.
func Apply(pos *Position, m Move) *Position {
	next := *pos

	turn := pos.turn
	opp := turn.Opponent()

	// 1. Update placement.
	next.xor(m.From, turn, m.Piece)

	switch m.Type {
	case Capture, CapturePromotion:
		next.xor(m.To, opp, m.Capture)
	case EnPassant:
		epc, _ := m.EnPassantCapture()
		next.xor(epc, opp, Pawn)
	}

	switch m.Type {
	case Promotion, CapturePromotion:
		next.xor(m.To, turn, m.Promotion)
	default:
		next.xor(m.To, turn, m.Piece)
	}

	if rf, rt, ok := m.CastlingRookMove(); ok {
		next.xor(rf, turn, Rook)
		next.xor(rt, turn, Rook)
	}

	// 2. Flip side to move.
	next.turn = opp

	// 3. Update castling rights: monotonically decreasing.
	next.castling = pos.castling.Clear(m.CastlingRightsLost())

	// 4. Update en passant target.
	if ep, ok := m.EnPassantTarget(); ok {
		next.enpassant = ep
	} else {
		next.enpassant = ZeroSquare
	}

	// 5. Update halfmove clock.
	if m.Type == Push || m.Type == Jump || m.Type == Promotion || m.Type == CapturePromotion || m.IsCapture() {
		next.halfmove = 0
	} else {
		next.halfmove = pos.halfmove + 1
	}

	// 6. Update fullmove number.
	if turn == Black {
		next.fullmove = pos.fullmove + 1
	} else {
		next.fullmove = pos.fullmove
	}

	return &next
}

func genPawnMoves(pos *Position, turn Color, sq Square, all, oppOcc Bitboard, out *[]Move) {
	delta := 1
	home := Rank2
	promo := Rank8
	if turn == Black {
		delta = -1
		home = Rank7
		promo = Rank1
	}

	r := int(sq.Rank())
	f := sq.File()

	nr := r + delta
	if nr < 0 || nr > int(Rank8) {
		return // unreachable: pawns never sit on the back rank.
	}

	oneSq := NewSquare(f, Rank(nr))
	if !all.IsSet(oneSq) {
		appendPawnAdvance(out, sq, oneSq, Rank(nr) == promo)

		if sq.Rank() == home {
			nr2 := r + 2*delta
			twoSq := NewSquare(f, Rank(nr2))
			if !all.IsSet(twoSq) {
				*out = append(*out, Move{Type: Jump, From: sq, To: twoSq, Piece: Pawn})
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		nf := int(f) + df
		if nf < 0 || nf > int(FileH) {
			continue
		}
		capSq := NewSquare(File(nf), Rank(nr))
		if oppOcc.IsSet(capSq) {
			_, cap, _ := pos.Square(capSq)
			appendPawnCapture(out, sq, capSq, cap, Rank(nr) == promo)
		} else if ep, ok := pos.EnPassant(); ok && capSq == ep {
			*out = append(*out, Move{Type: EnPassant, From: sq, To: capSq, Piece: Pawn, Capture: Pawn})
		}
	}
}

func appendPawnAdvance(out *[]Move, from, to Square, promo bool) {
	if !promo {
		*out = append(*out, Move{Type: Push, From: from, To: to, Piece: Pawn})
		return
	}
	for _, p := range [4]Piece{Queen, Rook, Bishop, Knight} {
		*out = append(*out, Move{Type: Promotion, From: from, To: to, Piece: Pawn, Promotion: p})
	}
}

func appendPawnCapture(out *[]Move, from, to Square, capture Piece, promo bool) {
	if !promo {
		*out = append(*out, Move{Type: Capture, From: from, To: to, Piece: Pawn, Capture: capture})
		return
	}
	for _, p := range [4]Piece{Queen, Rook, Bishop, Knight} {
		*out = append(*out, Move{Type: CapturePromotion, From: from, To: to, Piece: Pawn, Promotion: p, Capture: capture})
	}
}

func genPieceMoves(pos *Position, turn Color, piece Piece, all, ownOcc, oppOcc Bitboard, out *[]Move) {
	for bb := pos.pieces[turn][piece]; bb != 0; {
		sq := bb.LastPopSquare()
		bb &^= BitMask(sq)

		var dest Bitboard
		switch piece {
		case Knight:
			dest = KnightAttackboard(sq)
		case King:
			dest = KingAttackboard(sq)
		default:
			dest = Attackboard(all, sq, piece)
		}
		dest &^= ownOcc

		for d := dest; d != 0; {
			to := d.LastPopSquare()
			d &^= BitMask(to)

			if oppOcc.IsSet(to) {
				_, cap, _ := pos.Square(to)
				*out = append(*out, Move{Type: Capture, From: sq, To: to, Piece: piece, Capture: cap})
			} else {
				*out = append(*out, Move{Type: Normal, From: sq, To: to, Piece: piece})
			}
		}
	}
}

// genCastling appends the castling moves available to turn, if any. Per §4.E: the
// relevant right must be set, the squares between king and rook empty, the king not
// currently in check, and neither the square the king passes over nor its
// destination attacked. The rook's own intermediate square (the queenside b-file)
// need only be empty, not unattacked.
func genCastling(pos *Position, turn Color, all Bitboard, out *[]Move) {
	rank := Rank1
	kingHome := E1
	if turn == Black {
		rank = Rank8
		kingHome = E8
	}
	if pos.pieces[turn][King].LastPopSquare() != kingHome {
		return
	}

	opp := turn.Opponent()
	if pos.IsAttacked(kingHome, opp) {
		return
	}

	if pos.castling.IsAllowed(KingSide(turn)) {
		f1 := NewSquare(FileF, rank)
		g1 := NewSquare(FileG, rank)
		if !all.IsSet(f1) && !all.IsSet(g1) && !pos.IsAttacked(f1, opp) && !pos.IsAttacked(g1, opp) {
			*out = append(*out, Move{Type: KingSideCastle, From: kingHome, To: g1, Piece: King})
		}
	}
	if pos.castling.IsAllowed(QueenSide(turn)) {
		d1 := NewSquare(FileD, rank)
		c1 := NewSquare(FileC, rank)
		b1 := NewSquare(FileB, rank)
		if !all.IsSet(d1) && !all.IsSet(c1) && !all.IsSet(b1) && !pos.IsAttacked(d1, opp) && !pos.IsAttacked(c1, opp) {
			*out = append(*out, Move{Type: QueenSideCastle, From: kingHome, To: c1, Piece: King})
		}
	}
}
