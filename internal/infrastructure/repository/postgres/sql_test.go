package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get player: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation players does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert pairing: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
		if isUniqueViolation(fakeErr("boom")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestNullTimeConversions(t *testing.T) {
	if nullTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected nil for invalid time")
	}

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	got := nullTimePtr(timePtrToNull(&now))
	if got == nil || !got.Equal(now) {
		t.Fatalf("unexpected round trip: %v", got)
	}
	if timePtrToNull(nil).Valid {
		t.Fatalf("expected invalid null time for nil pointer")
	}
}

func TestTournamentFromRow(t *testing.T) {
	ended := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	row := tournamentTableModel{
		ID:           5,
		Name:         "Open",
		Ruleset:      "blitz",
		NbRounds:     4,
		PlayerIDs:    pq.Int64Array{1, 2, 3, 4, 5, 6, 7, 8},
		PlayedRounds: 4,
		RoundIDs:     pq.Int64Array{9, 10, 11, 12},
		EndedAt:      sql.NullTime{Time: ended, Valid: true},
	}

	got := tournamentFromRow(row)
	if got.ID != 5 || len(got.PlayerIDs) != 8 || len(got.RoundIDs) != 4 {
		t.Fatalf("unexpected tournament: %+v", got)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(ended) {
		t.Fatalf("unexpected ended at: %v", got.EndedAt)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
