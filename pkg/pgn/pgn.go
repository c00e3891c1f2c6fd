// Package pgn assembles and parses the Seven Tag Roster subset of Portable Game
// Notation: tag pairs, SAN movetext with move numbers, and a trailing result
// token. Variations, comments and NAG annotations -- the rest of the PGN
// standard -- are out of scope.
package pgn

import (
	"strconv"
	"strings"

	"github.com/herohde/morlock/pkg/board"
	"github.com/herohde/morlock/pkg/board/fen"
	"github.com/herohde/morlock/pkg/board/san"
	"github.com/herohde/morlock/pkg/game"
)

// Tags holds the Seven Tag Roster (Event, Site, Date, Round, White, Black --
// Result is always derived from the Game, not recorded here) plus the optional
// starting FEN for games that did not begin from the standard position.
type Tags struct {
	Event, Site, Date, Round, White, Black string

	// FEN, if non-empty, is emitted as the SetUp/FEN tag pair and used as the
	// game's starting position on Decode.
	FEN string
}

// Encode assembles a full PGN document for g: the tag pairs in roster order,
// numbered SAN movetext, and the result token.
func Encode(g *game.Game, tags Tags) string {
	var sb strings.Builder

	writeTag(&sb, "Event", orDefault(tags.Event))
	writeTag(&sb, "Site", orDefault(tags.Site))
	writeTag(&sb, "Date", orDefault(tags.Date))
	writeTag(&sb, "Round", orDefault(tags.Round))
	writeTag(&sb, "White", orDefault(tags.White))
	writeTag(&sb, "Black", orDefault(tags.Black))
	writeTag(&sb, "Result", g.Result().Outcome.String())
	if tags.FEN != "" {
		writeTag(&sb, "SetUp", "1")
		writeTag(&sb, "FEN", tags.FEN)
	}
	sb.WriteRune('\n')

	if mt := numberedMovetext(g); mt != "" {
		sb.WriteString(mt)
		sb.WriteRune(' ')
	}
	sb.WriteString(g.Result().Outcome.String())

	return sb.String()
}

func writeTag(sb *strings.Builder, name, value string) {
	sb.WriteString(`[`)
	sb.WriteString(name)
	sb.WriteString(` "`)
	sb.WriteString(value)
	sb.WriteString("\"]\n")
}

func orDefault(v string) string {
	if v == "" {
		return "?"
	}
	return v
}

// numberedMovetext renders g's moves as "N. white black N. white black ...",
// the SAN tokens from Game.MoveText with move numbers interleaved.
func numberedMovetext(g *game.Game) string {
	tokens := strings.Fields(g.MoveText())

	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteRune(' ')
		}
		if i%2 == 0 {
			sb.WriteString(strconv.Itoa(i/2 + 1))
			sb.WriteString(". ")
		}
		sb.WriteString(tok)
	}
	return sb.String()
}

// Decode parses a PGN document, replays its movetext through a Game starting
// from the standard position (or the SetUp/FEN tag pair, if present), and
// returns the reconstructed Game and Tags. Per the Result tag convention: if
// the Result tag disagrees with a terminal position the movetext itself
// reaches (e.g. "1-0" over a movetext ending in stalemate), Decode returns
// SemanticError; if the movetext does not reach a terminal position at all, a
// decisive Result tag is interpreted as resignation by the losing side, and a
// drawn Result tag as a draw by agreement.
func Decode(pgn string) (*game.Game, Tags, error) {
	header, movetext := splitSections(pgn)

	raw, err := parseTags(header)
	if err != nil {
		return nil, Tags{}, err
	}

	tags := Tags{
		Event: raw["Event"], Site: raw["Site"], Date: raw["Date"], Round: raw["Round"],
		White: raw["White"], Black: raw["Black"], FEN: raw["FEN"],
	}

	resultTag, ok := raw["Result"]
	if !ok {
		return nil, Tags{}, board.NewError(board.SemanticError, "PGN missing required Result tag")
	}

	start := fen.Initial
	if tags.FEN != "" {
		start = tags.FEN
	}
	pos, err := fen.Decode(start)
	if err != nil {
		return nil, Tags{}, board.WrapError(board.SemanticError, err, "PGN starting position")
	}

	g := game.NewGame(pos)
	for _, tok := range movetextTokens(movetext) {
		m, err := san.Decode(g.Position(), tok)
		if err != nil {
			return nil, Tags{}, board.WrapError(board.SyntaxError, err, "PGN movetext token %q", tok)
		}
		if err := g.MakeMove(m); err != nil {
			return nil, Tags{}, board.WrapError(board.SemanticError, err, "PGN movetext token %q", tok)
		}
	}

	if g.IsOver() {
		if g.Result().Outcome.String() != resultTag {
			return nil, Tags{}, board.NewError(board.SemanticError,
				"PGN Result tag %q disagrees with movetext-implied result %q", resultTag, g.Result().Outcome)
		}
		return g, tags, nil
	}

	switch resultTag {
	case game.WhiteWins.String():
		g.Resign(board.Black)
	case game.BlackWins.String():
		g.Resign(board.White)
	case game.Draw.String():
		g.AgreeDraw()
	case game.Undecided.String():
		// Game left ongoing, as recorded.
	default:
		return nil, Tags{}, board.NewError(board.SemanticError, "invalid PGN Result tag %q", resultTag)
	}
	return g, tags, nil
}

// splitSections separates the tag-pair header from the movetext: the header is
// every line starting with '[', the movetext is everything after the first
// blank line (or, failing that, every non-tag line).
func splitSections(pgn string) (header, movetext string) {
	lines := strings.Split(pgn, "\n")

	var h, m []string
	inHeader := true
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inHeader && strings.HasPrefix(trimmed, "[") {
			h = append(h, trimmed)
			continue
		}
		if trimmed == "" {
			inHeader = false
			continue
		}
		inHeader = false
		m = append(m, trimmed)
	}
	return strings.Join(h, "\n"), strings.Join(m, " ")
}

func parseTags(header string) (map[string]string, error) {
	tags := make(map[string]string)
	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			return nil, board.NewError(board.SyntaxError, "malformed PGN tag line: %v", line)
		}
		body := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")

		sp := strings.IndexByte(body, ' ')
		if sp < 0 {
			return nil, board.NewError(board.SyntaxError, "malformed PGN tag line: %v", line)
		}
		name := body[:sp]
		value := strings.TrimSpace(body[sp+1:])
		if !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) || len(value) < 2 {
			return nil, board.NewError(board.SyntaxError, "malformed PGN tag value: %v", line)
		}
		tags[name] = strings.Trim(value, `"`)
	}
	return tags, nil
}

// movetextTokens strips move numbers ("12.", "12...") and the trailing result
// token from the movetext, leaving only SAN tokens in game order.
func movetextTokens(movetext string) []string {
	var out []string
	for _, f := range strings.Fields(movetext) {
		switch f {
		case "1-0", "0-1", "1/2-1/2", "*":
			continue
		}
		if isMoveNumber(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isMoveNumber(f string) bool {
	i := strings.IndexFunc(f, func(r rune) bool { return r != '.' && (r < '0' || r > '9') })
	if i == 0 {
		return false
	}
	if i < 0 {
		return true // every rune is a digit or a dot, e.g. "12", "12." or "12...".
	}
	return f[i] == '.'
}
