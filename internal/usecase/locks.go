package usecase

import "sync"

// tournamentLocks serializes state changes of one tournament.
type tournamentLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newTournamentLocks() *tournamentLocks {
	return &tournamentLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *tournamentLocks) lock(tournamentID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[tournamentID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[tournamentID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
