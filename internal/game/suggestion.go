package game

// Seat is what the disprove scan needs to know about a player.
type Seat struct {
	PlayerID   string
	Hand       []Card
	Eliminated bool
}

// Matching returns the cards of hand named by the suggestion, in hand order.
func Matching(hand []Card, s Suggestion) []Card {
	var out []Card
	named := s.Cards()
	for _, c := range hand {
		for _, n := range named {
			if c == n {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// DisproveOrder lists the seats to ask, starting right after the suggester and
// wrapping around. The suggester and eliminated players are skipped.
func DisproveOrder(seats []Seat, suggester int) []int {
	n := len(seats)
	out := make([]int, 0, n)
	for step := 1; step < n; step++ {
		i := (suggester + step) % n
		if seats[i].Eliminated {
			continue
		}
		out = append(out, i)
	}
	return out
}

// FindDisprover returns the first seat in DisproveOrder holding any named card,
// together with every card of theirs that matches. It returns -1 when nobody can
// disprove. The card to show is left to the disprover.
func FindDisprover(seats []Seat, suggester int, s Suggestion) (int, []Card) {
	for _, i := range DisproveOrder(seats, suggester) {
		if m := Matching(seats[i].Hand, s); len(m) > 0 {
			return i, m
		}
	}
	return -1, nil
}
