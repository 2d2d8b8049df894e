package table

import (
	"fmt"
	"io"

	"golang.org/x/text/message"

	"github.com/louisbranch/blackjack/internal/deck"
	"github.com/louisbranch/blackjack/internal/score"
)

// Localizer is the minimal message-printer contract required by the table.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// ClearScreen writes the ANSI erase-display sequence.
func ClearScreen(out io.Writer) {
	fmt.Fprint(out, "\x1b[2J")
}

// RenderDealerHand writes the dealer's cards, keeping the first card hidden.
func RenderDealerHand(out io.Writer, loc Localizer, cards []deck.Card) {
	fmt.Fprintln(out, loc.Sprintf("table.dealer_heading"))
	for i, card := range cards {
		if i == 0 {
			fmt.Fprintln(out, loc.Sprintf("table.hidden_card"))
			continue
		}
		fmt.Fprintln(out, loc.Sprintf("table.card_line", cardLabel(loc, card)))
	}
	fmt.Fprintln(out)
}

// RenderPlayerHand writes the player's cards followed by their total.
func RenderPlayerHand(out io.Writer, loc Localizer, cards []deck.Card) {
	fmt.Fprintln(out, loc.Sprintf("table.player_heading"))
	for _, card := range cards {
		fmt.Fprintln(out, loc.Sprintf("table.card_line", cardLabel(loc, card)))
	}
	fmt.Fprintln(out, loc.Sprintf("table.hand_total", score.Total(cards)))
	fmt.Fprintln(out)
}

// RenderOptions writes the choice menu.
func RenderOptions(out io.Writer, loc Localizer) {
	fmt.Fprintln(out, loc.Sprintf("table.options"))
}

func cardLabel(loc Localizer, card deck.Card) string {
	rank, okRank := rankKey(card.Rank)
	suit, okSuit := suitKey(card.Suit)
	if !okRank || !okSuit {
		return card.String()
	}
	return loc.Sprintf("card.label", loc.Sprintf(rank), loc.Sprintf(suit))
}

func rankKey(rank deck.Rank) (message.Reference, bool) {
	switch rank {
	case deck.RankTwo:
		return "card.rank.two", true
	case deck.RankThree:
		return "card.rank.three", true
	case deck.RankFour:
		return "card.rank.four", true
	case deck.RankFive:
		return "card.rank.five", true
	case deck.RankSix:
		return "card.rank.six", true
	case deck.RankSeven:
		return "card.rank.seven", true
	case deck.RankEight:
		return "card.rank.eight", true
	case deck.RankNine:
		return "card.rank.nine", true
	case deck.RankTen:
		return "card.rank.ten", true
	case deck.RankJack:
		return "card.rank.jack", true
	case deck.RankQueen:
		return "card.rank.queen", true
	case deck.RankKing:
		return "card.rank.king", true
	case deck.RankAce:
		return "card.rank.ace", true
	default:
		return nil, false
	}
}

func suitKey(suit deck.Suit) (message.Reference, bool) {
	switch suit {
	case deck.SuitSpades:
		return "card.suit.spades", true
	case deck.SuitHearts:
		return "card.suit.hearts", true
	case deck.SuitDiamonds:
		return "card.suit.diamonds", true
	case deck.SuitClubs:
		return "card.suit.clubs", true
	default:
		return nil, false
	}
}
