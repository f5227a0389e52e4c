package memory

import (
	"fmt"
	"sync"

	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/score"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	"github.com/riskibarqy/chess-tournament/internal/platform/recordstore"
)

type pairingRecord struct {
	TournamentID int64
	Pairing      pairing.Pairing
}

// Store holds the record tables shared by the memory repositories.
type Store struct {
	// mu serializes writes that span several tables.
	mu sync.Mutex

	players     *recordstore.Table[player.Player]
	tournaments *recordstore.Table[tournament.Tournament]
	pairings    *recordstore.Table[pairingRecord]
	rounds      *recordstore.Table[round.Round]
	matches     *recordstore.Table[round.Match]
	scores      *recordstore.Table[score.Score]
}

func NewStore() *Store {
	return &Store{
		players: recordstore.New[player.Player]("players",
			recordstore.WithUniqueKey(func(p player.Player) string { return idKey(p.ID) }),
		),
		tournaments: recordstore.New[tournament.Tournament]("tournaments",
			recordstore.WithClone(tournament.Tournament.Clone),
			recordstore.WithUniqueKey(func(t tournament.Tournament) string { return idKey(t.ID) }),
		),
		pairings: recordstore.New[pairingRecord]("tournament_pairings",
			recordstore.WithUniqueKey(func(r pairingRecord) string {
				return fmt.Sprintf("%d:%d:%d", r.TournamentID, r.Pairing.Low, r.Pairing.High)
			}),
		),
		rounds: recordstore.New[round.Round]("rounds",
			recordstore.WithClone(round.Round.Clone),
			recordstore.WithUniqueKey(func(r round.Round) string { return idKey(r.ID) }),
		),
		matches: recordstore.New[round.Match]("matches",
			recordstore.WithClone(round.Match.Clone),
			recordstore.WithUniqueKey(func(m round.Match) string { return idKey(m.ID) }),
		),
		scores: recordstore.New[score.Score]("scores",
			recordstore.WithUniqueKey(func(s score.Score) string {
				return fmt.Sprintf("%d:%d", s.TournamentID, s.PlayerID)
			}),
		),
	}
}

func idKey(id int64) string {
	return fmt.Sprintf("%d", id)
}
