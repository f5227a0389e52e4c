package pairing

// searchPerfectMatching walks the ranked order depth-first. The first
// unmatched player is tried against every later unmatched player in rank
// order, so the first matching found is the most rank-preserving one.
func searchPerfectMatching(ranked []int64, history History) ([]Matchup, bool) {
	used := make([]bool, len(ranked))
	matchups := make([]Matchup, 0, len(ranked)/2)

	var walk func() bool
	walk = func() bool {
		head := -1
		for i := range ranked {
			if !used[i] {
				head = i
				break
			}
		}
		if head < 0 {
			return true
		}

		used[head] = true
		for j := head + 1; j < len(ranked); j++ {
			if used[j] || !history.Contains(ranked[head], ranked[j]) {
				continue
			}
			used[j] = true
			matchups = append(matchups, Matchup{PlayerOneID: ranked[head], PlayerTwoID: ranked[j]})
			if walk() {
				return true
			}
			matchups = matchups[:len(matchups)-1]
			used[j] = false
		}
		used[head] = false

		return false
	}

	if !walk() {
		return nil, false
	}
	return matchups, true
}
