package player

import (
	"testing"
	"time"
)

func TestPlayerValidate(t *testing.T) {
	base := Player{
		FirstName: "Judit",
		LastName:  "Polgar",
		BirthDate: time.Date(1976, 7, 23, 0, 0, 0, 0, time.UTC),
		Gender:    GenderFemale,
		Elo:       2735,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := base.DisplayName(); got != "Judit Polgar" {
		t.Fatalf("unexpected display name: %s", got)
	}

	tests := map[string]func(*Player){
		"missing first name": func(p *Player) { p.FirstName = "" },
		"missing last name":  func(p *Player) { p.LastName = "  " },
		"missing birth date": func(p *Player) { p.BirthDate = time.Time{} },
		"unknown gender":     func(p *Player) { p.Gender = "Q" },
		"zero elo":           func(p *Player) { p.Elo = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := base
			mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
