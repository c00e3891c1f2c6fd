package game

import (
	"fmt"

	"github.com/herohde/morlock/pkg/board"
)

// Outcome identifies which side, if any, a finished game favored.
type Outcome uint8

const (
	Undecided Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Undecided:
		return "*"
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "?"
	}
}

// Reason identifies why a Result was reached.
type Reason uint8

const (
	NoReason Reason = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	Repetition3 // threefold repetition, claimed
	Repetition5 // fivefold repetition, automatic
	NoProgress50 // fifty-move rule, claimed
	NoProgress75 // seventy-five-move rule, automatic
	Resignation
	Agreement // draw by agreement, e.g. imported from a PGN Result tag
)

func (r Reason) String() string {
	switch r {
	case NoReason:
		return ""
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case Repetition3:
		return "threefold repetition"
	case Repetition5:
		return "fivefold repetition"
	case NoProgress50:
		return "fifty-move rule"
	case NoProgress75:
		return "seventy-five-move rule"
	case Resignation:
		return "resignation"
	case Agreement:
		return "agreement"
	default:
		return "unknown"
	}
}

// Result is the outcome of a game together with the reason it was reached. The zero
// value is the result of a game still in progress.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

func (r Result) String() string {
	if r.Reason == NoReason {
		return r.Outcome.String()
	}
	return fmt.Sprintf("%v (%v)", r.Outcome, r.Reason)
}

// Win constructs the decisive result for the winning color.
func Win(winner board.Color, reason Reason) Result {
	if winner == board.White {
		return Result{Outcome: WhiteWins, Reason: reason}
	}
	return Result{Outcome: BlackWins, Reason: reason}
}

// Loss constructs the decisive result for the losing color.
func Loss(loser board.Color, reason Reason) Result {
	return Win(loser.Opponent(), reason)
}

// DrawBy constructs a drawn result.
func DrawBy(reason Reason) Result {
	return Result{Outcome: Draw, Reason: reason}
}
