package httpapi

import (
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/standing"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	"github.com/riskibarqy/chess-tournament/internal/usecase"
)

const dateLayout = "2006-01-02"

type registerPlayerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"required,oneof=M F X"`
	Elo       *int   `json:"elo" validate:"required,gt=0,lte=4000"`
}

type updateEloRequest struct {
	Elo *int `json:"elo" validate:"required,gt=0,lte=4000"`
}

type createTournamentRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Location    string  `json:"location" validate:"required,max=120"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Ruleset     string  `json:"ruleset" validate:"required,oneof=bullet blitz rapid"`
	NbRounds    int     `json:"nb_rounds" validate:"omitempty,min=1,max=7"`
	PlayerIDs   []int64 `json:"player_ids" validate:"required,len=8,unique,dive,gt=0"`
}

type matchResultRequest struct {
	ScoreOne *float64 `json:"score_one" validate:"required,gte=0,lte=1"`
	ScoreTwo *float64 `json:"score_two" validate:"required,gte=0,lte=1"`
}

type playerDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Elo       int    `json:"elo"`
}

type tournamentDTO struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location,omitempty"`
	Description  string  `json:"description,omitempty"`
	Ruleset      string  `json:"ruleset"`
	NbRounds     int     `json:"nb_rounds"`
	PlayedRounds int     `json:"played_rounds"`
	PlayerIDs    []int64 `json:"player_ids"`
	RoundIDs     []int64 `json:"round_ids"`
	StartedAt    string  `json:"started_at"`
	EndedAt      string  `json:"ended_at,omitempty"`
}

type standingDTO struct {
	Position int       `json:"position"`
	Player   playerDTO `json:"player"`
	Score    float64   `json:"score"`
}

type pairingDTO struct {
	PlayerLowID  int64 `json:"player_low_id"`
	PlayerHighID int64 `json:"player_high_id"`
}

type matchDTO struct {
	ID            int64    `json:"id"`
	Board         int      `json:"board,omitempty"`
	PlayerOneID   int64    `json:"player_one_id"`
	PlayerTwoID   int64    `json:"player_two_id"`
	PlayerOneName string   `json:"player_one_name"`
	PlayerTwoName string   `json:"player_two_name"`
	ScoreOne      *float64 `json:"score_one,omitempty"`
	ScoreTwo      *float64 `json:"score_two,omitempty"`
	ResultAt      string   `json:"result_at,omitempty"`
}

type roundDTO struct {
	ID           int64      `json:"id"`
	TournamentID int64      `json:"tournament_id"`
	Ordinal      int        `json:"ordinal"`
	Name         string     `json:"name"`
	Open         bool       `json:"open"`
	StartedAt    string     `json:"started_at"`
	EndedAt      string     `json:"ended_at,omitempty"`
	Matches      []matchDTO `json:"matches"`
}

type tournamentSummaryDTO struct {
	Tournament        tournamentDTO `json:"tournament"`
	Leader            *standingDTO  `json:"leader,omitempty"`
	ClosedRounds      int           `json:"closed_rounds"`
	MatchesWithResult int           `json:"matches_with_result"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: p.BirthDate.Format(dateLayout),
		Gender:    string(p.Gender),
		Elo:       p.Elo,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func tournamentToDTO(t tournament.Tournament) tournamentDTO {
	roundIDs := t.RoundIDs
	if roundIDs == nil {
		roundIDs = []int64{}
	}
	return tournamentDTO{
		ID:           t.ID,
		Name:         t.Name,
		Location:     t.Location,
		Description:  t.Description,
		Ruleset:      string(t.Ruleset),
		NbRounds:     t.NbRounds,
		PlayedRounds: t.PlayedRounds,
		PlayerIDs:    t.PlayerIDs,
		RoundIDs:     roundIDs,
		StartedAt:    t.StartedAt.Format(time.RFC3339),
		EndedAt:      formatOptionalTime(t.EndedAt),
	}
}

func standingToDTO(s standing.Standing) standingDTO {
	return standingDTO{
		Position: s.Position,
		Player:   playerToDTO(s.Player),
		Score:    s.Score,
	}
}

func standingsToDTO(items []standing.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, s := range items {
		out = append(out, standingToDTO(s))
	}
	return out
}

func pairingsToDTO(items []pairing.Pairing) []pairingDTO {
	out := make([]pairingDTO, 0, len(items))
	for _, p := range items {
		out = append(out, pairingDTO{PlayerLowID: p.Low, PlayerHighID: p.High})
	}
	return out
}

func matchToDTO(m round.Match, board int) matchDTO {
	out := matchDTO{
		ID:            m.ID,
		Board:         board,
		PlayerOneID:   m.PlayerOneID,
		PlayerTwoID:   m.PlayerTwoID,
		PlayerOneName: m.PlayerOneName,
		PlayerTwoName: m.PlayerTwoName,
	}
	if m.HasResult() {
		scoreOne, scoreTwo := m.ScoreOne, m.ScoreTwo
		out.ScoreOne = &scoreOne
		out.ScoreTwo = &scoreTwo
		out.ResultAt = formatOptionalTime(m.ResultAt)
	}
	return out
}

func roundToDTO(rd round.Round, matches []round.Match) roundDTO {
	out := roundDTO{
		ID:           rd.ID,
		TournamentID: rd.TournamentID,
		Ordinal:      rd.Ordinal,
		Name:         rd.Name,
		Open:         rd.IsOpen(),
		StartedAt:    rd.StartedAt.Format(time.RFC3339),
		EndedAt:      formatOptionalTime(rd.EndedAt),
		Matches:      make([]matchDTO, 0, len(matches)),
	}
	for i, m := range matches {
		out.Matches = append(out.Matches, matchToDTO(m, i+1))
	}
	return out
}

func roundDetailsToDTO(items []usecase.RoundDetail) []roundDTO {
	out := make([]roundDTO, 0, len(items))
	for _, item := range items {
		out = append(out, roundToDTO(item.Round, item.Matches))
	}
	return out
}

func tournamentSummariesToDTO(items []usecase.TournamentSummary) []tournamentSummaryDTO {
	out := make([]tournamentSummaryDTO, 0, len(items))
	for _, item := range items {
		row := tournamentSummaryDTO{
			Tournament:        tournamentToDTO(item.Tournament),
			ClosedRounds:      item.ClosedRounds,
			MatchesWithResult: item.MatchesWithResult,
		}
		if item.Leader != nil {
			leader := standingToDTO(*item.Leader)
			row.Leader = &leader
		}
		out = append(out, row)
	}
	return out
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
