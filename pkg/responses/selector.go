package responses

// Rand is the random source used for selection. *math/rand/v2.Rand
// satisfies it; tests substitute scripted sources.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Pool is a fixed, ordered set of canned lines for one topic.
type Pool []string

// Choose returns a uniformly random entry without consulting any history.
// It returns "" for an empty pool.
func Choose(rng Rand, pool Pool) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.IntN(len(pool))]
}

// Pick returns a uniformly random entry that is not in history, and the
// history with that entry pushed.
//
// Sampling uniformly from the entries outside the window gives the same
// distribution as redrawing until a fresh entry comes up, without the
// unbounded loop. When every entry is inside the window the whole pool is
// used instead.
func Pick(rng Rand, pool Pool, history History) (string, History) {
	if len(pool) == 0 {
		return "", history
	}

	fresh := make([]string, 0, len(pool))
	for _, s := range pool {
		if !history.Contains(s) {
			fresh = append(fresh, s)
		}
	}
	if len(fresh) == 0 {
		fresh = pool
	}

	choice := fresh[rng.IntN(len(fresh))]
	return choice, history.Push(choice)
}

// Band returns the sub-pool pool[start:start+size], clamped to the pool.
func Band(pool Pool, start, size int) Pool {
	if start < 0 {
		start = 0
	}
	if start >= len(pool) {
		return nil
	}
	end := start + size
	if end > len(pool) {
		end = len(pool)
	}
	return pool[start:end]
}
