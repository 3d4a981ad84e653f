package runtime

import "github.com/aretw0/dfacheck/pkg/domain"

// Reachable marks every state reachable from q (q included).
func Reachable(a *domain.Automaton, q domain.StateID) []bool {
	visited := make([]bool, a.NumStates())
	queue := []domain.StateID{q}
	visited[q] = true
	alphabet := a.Alphabet()

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, s := range alphabet {
			next, _ := a.Next(cur, s)
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// CoReachable marks every state from which some accepting state can be
// reached (accepting states included).
func CoReachable(a *domain.Automaton) []bool {
	n := a.NumStates()
	reverse := make([][]domain.StateID, n)
	for _, e := range a.Edges() {
		reverse[e.To] = append(reverse[e.To], e.From)
	}

	live := make([]bool, n)
	queue := a.Accepting()
	for _, q := range queue {
		live[q] = true
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, prev := range reverse[cur] {
			if !live[prev] {
				live[prev] = true
				queue = append(queue, prev)
			}
		}
	}
	return live
}
