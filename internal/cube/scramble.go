package cube

import "math/rand"

// Scramble returns the state reached by a random walk of n face turns from
// solved, together with the walk. Consecutive turns of the same face, and
// opposite faces in non-canonical order, are redrawn so that the walk has no
// trivially cancelling neighbours.
func Scramble(n int, rng *rand.Rand) (State, []Move) {
	s := Solved()
	moves := make([]Move, 0, n)
	for len(moves) < n {
		m := allMoves[rng.Intn(NumMoves)]
		if len(moves) > 0 && !m.Follows(moves[len(moves)-1]) {
			continue
		}
		moves = append(moves, m)
		s = s.Multiply(m.action)
	}
	return s, moves
}

// Scramble returns s after a random walk of n turns; see Scramble.
func (s State) Scramble(n int, rng *rand.Rand) (State, []Move) {
	scrambled, moves := Scramble(n, rng)
	return s.Multiply(scrambled), moves
}
