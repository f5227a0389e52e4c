package httpapi

import (
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
)

// renderRoundSheet prints the pairings of a round as a plain-text board list
// suitable for posting in the playing hall.
func renderRoundSheet(t tournament.Tournament, rd round.Round, matches []round.Match) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(t.Name)
	_, _ = buf.WriteString(" (")
	_, _ = buf.WriteString(string(t.Ruleset))
	_, _ = buf.WriteString(")\n")

	_, _ = buf.WriteString(rd.Name)
	_, _ = buf.WriteString(" of ")
	_, _ = buf.WriteString(strconv.Itoa(t.NbRounds))
	if rd.IsOpen() {
		_, _ = buf.WriteString(" - in progress\n")
	} else {
		_, _ = buf.WriteString(" - closed\n")
	}

	for i, m := range matches {
		_, _ = buf.WriteString("Board ")
		_, _ = buf.WriteString(strconv.Itoa(i + 1))
		_, _ = buf.WriteString(": ")
		_, _ = buf.WriteString(m.PlayerOneName)
		_, _ = buf.WriteString(" ")
		if m.HasResult() {
			_, _ = buf.WriteString(formatScore(m.ScoreOne))
			_, _ = buf.WriteString(" - ")
			_, _ = buf.WriteString(formatScore(m.ScoreTwo))
		} else {
			_, _ = buf.WriteString("vs")
		}
		_, _ = buf.WriteString(" ")
		_, _ = buf.WriteString(m.PlayerTwoName)
		_ = buf.WriteByte('\n')
	}

	return append([]byte(nil), buf.B...)
}

func formatScore(v float64) string {
	if v == round.ScoreDraw {
		return "1/2"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
