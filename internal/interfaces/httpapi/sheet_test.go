package httpapi

import (
	"testing"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
)

func TestRenderRoundSheet(t *testing.T) {
	resultAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := tournament.Tournament{Name: "Spring Open", Ruleset: tournament.RulesetBlitz, NbRounds: 4}
	rd := round.Round{ID: 2, Ordinal: 2, Name: "Round 2"}
	matches := []round.Match{
		{PlayerOneName: "Magnus Carlsen", PlayerTwoName: "Hikaru Nakamura", ScoreOne: 1, ScoreTwo: 0, ResultAt: &resultAt},
		{PlayerOneName: "Ding Liren", PlayerTwoName: "Alireza Firouzja", ScoreOne: 0.5, ScoreTwo: 0.5, ResultAt: &resultAt},
		{PlayerOneName: "Fabiano Caruana", PlayerTwoName: "Ian Nepomniachtchi"},
	}

	got := string(renderRoundSheet(item, rd, matches))
	want := "Spring Open (blitz)\n" +
		"Round 2 of 4 - in progress\n" +
		"Board 1: Magnus Carlsen 1 - 0 Hikaru Nakamura\n" +
		"Board 2: Ding Liren 1/2 - 1/2 Alireza Firouzja\n" +
		"Board 3: Fabiano Caruana vs Ian Nepomniachtchi\n"
	if got != want {
		t.Fatalf("unexpected sheet:\nwant:\n%s\ngot:\n%s", want, got)
	}

	rd.EndedAt = &resultAt
	got = string(renderRoundSheet(item, rd, nil))
	if got != "Spring Open (blitz)\nRound 2 of 4 - closed\n" {
		t.Fatalf("unexpected closed sheet: %q", got)
	}
}
