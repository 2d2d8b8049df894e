// Package deck implements the playing-card model and deck handling for
// the blackjack table.
package deck

import (
	"errors"
	"fmt"
	"math/rand"
)

// Suit identifies one of the four French playing-card suits.
type Suit int

const (
	// SuitUnspecified represents an invalid suit value.
	SuitUnspecified Suit = iota
	// SuitSpades is the spades suit.
	SuitSpades
	// SuitHearts is the hearts suit.
	SuitHearts
	// SuitDiamonds is the diamonds suit.
	SuitDiamonds
	// SuitClubs is the clubs suit.
	SuitClubs
)

func (s Suit) String() string {
	switch s {
	case SuitSpades:
		return "Spades"
	case SuitHearts:
		return "Hearts"
	case SuitDiamonds:
		return "Diamonds"
	case SuitClubs:
		return "Clubs"
	default:
		return "Unknown"
	}
}

// Rank identifies a card rank, ordered by enumeration position.
type Rank int

const (
	// RankUnspecified represents an invalid rank value.
	RankUnspecified Rank = iota
	RankTwo
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

func (r Rank) String() string {
	switch r {
	case RankTwo:
		return "Two"
	case RankThree:
		return "Three"
	case RankFour:
		return "Four"
	case RankFive:
		return "Five"
	case RankSix:
		return "Six"
	case RankSeven:
		return "Seven"
	case RankEight:
		return "Eight"
	case RankNine:
		return "Nine"
	case RankTen:
		return "Ten"
	case RankJack:
		return "Jack"
	case RankQueen:
		return "Queen"
	case RankKing:
		return "King"
	case RankAce:
		return "Ace"
	default:
		return "Unknown"
	}
}

// Value returns the rank's point value. Number cards count their face
// number, Jack through King count 10, and the Ace always counts 11.
// There is no soft-ace re-valuation in this rule set.
func (r Rank) Value() int {
	switch r {
	case RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight, RankNine:
		return int(r) + 1
	case RankTen, RankJack, RankQueen, RankKing:
		return 10
	case RankAce:
		return 11
	default:
		return 0
	}
}

// Suits returns the suits in canonical deck-building order.
func Suits() []Suit {
	return []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}
}

// Ranks returns the ranks in canonical deck-building order.
func Ranks() []Rank {
	return []Rank{
		RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
		RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce,
	}
}

// Card is an immutable rank and suit pair. Two cards are equal when both
// fields match.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

var (
	// ErrInvalidDrawCount indicates a draw request for zero or fewer cards.
	ErrInvalidDrawCount = errors.New("draw count must be positive")
	// ErrNotEnoughCards indicates a draw request larger than the deck.
	ErrNotEnoughCards = errors.New("not enough cards left in the deck")
)

// Deck is an ordered sequence of cards consumed from its tail.
type Deck struct {
	cards []Card
}

// Size is the number of cards in a full deck.
const Size = 52

// New builds the full 52-card deck in canonical suit-major, rank-minor
// order. No randomness is involved; call Shuffle before play.
func New() *Deck {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits() {
		for _, rank := range Ranks() {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return &Deck{cards: cards}
}

// Shuffle permutes the deck in place using the provided random source.
// The source is threaded in explicitly so rounds can be reproduced from
// a known seed.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes the last n cards from the deck and returns them in their
// deck order.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n <= 0 {
		return nil, ErrInvalidDrawCount
	}
	if n > len(d.cards) {
		return nil, ErrNotEnoughCards
	}
	cut := len(d.cards) - n
	drawn := make([]Card, n)
	copy(drawn, d.cards[cut:])
	d.cards = d.cards[:cut]
	return drawn, nil
}

// Remaining reports how many cards are left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
