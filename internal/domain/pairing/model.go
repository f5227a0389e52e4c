package pairing

import "sort"

// Pairing is an unordered pair of player ids, normalized so Low < High.
type Pairing struct {
	Low  int64
	High int64
}

func NewPairing(a, b int64) Pairing {
	if a > b {
		a, b = b, a
	}
	return Pairing{Low: a, High: b}
}

func (p Pairing) Involves(playerID int64) bool {
	return p.Low == playerID || p.High == playerID
}

// AllPairings lists every unordered pair of the given ids, in combination order.
func AllPairings(playerIDs []int64) []Pairing {
	out := make([]Pairing, 0, len(playerIDs)*(len(playerIDs)-1)/2)
	for i := 0; i < len(playerIDs); i++ {
		for j := i + 1; j < len(playerIDs); j++ {
			out = append(out, NewPairing(playerIDs[i], playerIDs[j]))
		}
	}
	return out
}

// History answers whether two players may still be paired.
type History interface {
	Contains(a, b int64) bool
}

// Set is an in-memory snapshot of the unplayed pairings of one tournament.
type Set map[Pairing]struct{}

func NewSet(pairings []Pairing) Set {
	out := make(Set, len(pairings))
	for _, p := range pairings {
		out[NewPairing(p.Low, p.High)] = struct{}{}
	}
	return out
}

func (s Set) Contains(a, b int64) bool {
	_, ok := s[NewPairing(a, b)]
	return ok
}

func (s Set) Remove(a, b int64) bool {
	key := NewPairing(a, b)
	if _, ok := s[key]; !ok {
		return false
	}
	delete(s, key)
	return true
}

// Sorted returns the set content ordered by (Low, High).
func (s Set) Sorted() []Pairing {
	out := make([]Pairing, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Low != out[j].Low {
			return out[i].Low < out[j].Low
		}
		return out[i].High < out[j].High
	})
	return out
}

// Matchup is one generated game: PlayerOneID is the higher ranked side.
type Matchup struct {
	PlayerOneID int64
	PlayerTwoID int64
}

func (m Matchup) Pairing() Pairing {
	return NewPairing(m.PlayerOneID, m.PlayerTwoID)
}
