package player

import (
	"fmt"
	"strings"
	"time"
)

// Gender is the registration gender marker.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "X"
)

var AllGenders = map[Gender]struct{}{
	GenderMale:   {},
	GenderFemale: {},
	GenderOther:  {},
}

// Player is a registered chess player. Identity is immutable, elo is not.
type Player struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate time.Time
	Gender    Gender
	Elo       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Player) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("player first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("player last name is required")
	}
	if p.BirthDate.IsZero() {
		return fmt.Errorf("player birth date is required")
	}
	if _, ok := AllGenders[p.Gender]; !ok {
		return fmt.Errorf("invalid player gender: %s", p.Gender)
	}
	if p.Elo <= 0 {
		return fmt.Errorf("player elo must be greater than zero")
	}

	return nil
}
