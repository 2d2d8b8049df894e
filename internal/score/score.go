package score

import "github.com/louisbranch/blackjack/internal/deck"

// BustLimit is the highest hand total that stays in play.
const BustLimit = 21

// Total sums the point values of all cards in a hand. Summation is
// commutative, so the hand's order never matters.
func Total(cards []deck.Card) int {
	total := 0
	for _, card := range cards {
		total += card.Rank.Value()
	}
	return total
}

// IsBust reports whether a total is over the bust limit.
func IsBust(total int) bool {
	return total > BustLimit
}

// Beats reports whether the player total wins against the dealer total.
// Ties favor the player.
func Beats(player, dealer int) bool {
	return player >= dealer
}
