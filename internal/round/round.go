// Package round implements the state machine for a single blackjack
// round against a static dealer hand.
//
// A round owns its deck and both hands for its whole lifetime. The deck,
// the dealer hand, and the player hand always partition the 52-card set:
// cards move between them and are never copied or created mid-round.
package round

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/louisbranch/blackjack/internal/deck"
	"github.com/louisbranch/blackjack/internal/score"
)

// Phase describes the lifecycle state of a round.
type Phase int

const (
	// PhaseUnspecified represents an invalid phase value.
	PhaseUnspecified Phase = iota
	// PhaseAwaitingChoice indicates the round is waiting on the player.
	PhaseAwaitingChoice
	// PhaseResolved indicates the round has reached a terminal outcome.
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingChoice:
		return "Awaiting choice"
	case PhaseResolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// Outcome describes how a resolved round ended.
type Outcome int

const (
	// OutcomeUnspecified represents an unresolved round.
	OutcomeUnspecified Outcome = iota
	// OutcomePlayerWin indicates the player stood at or above the dealer total.
	OutcomePlayerWin
	// OutcomeDealerWin indicates the player stood below the dealer total.
	OutcomeDealerWin
	// OutcomePlayerBust indicates a hit pushed the player over the limit.
	OutcomePlayerBust
	// OutcomeDeckExhausted indicates a hit found the deck empty.
	OutcomeDeckExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWin:
		return "Player win"
	case OutcomeDealerWin:
		return "Dealer win"
	case OutcomePlayerBust:
		return "Player bust"
	case OutcomeDeckExhausted:
		return "Deck exhausted"
	default:
		return "Unspecified"
	}
}

// PlayerWon reports whether the outcome counts as a win for the player.
func (o Outcome) PlayerWon() bool {
	return o == OutcomePlayerWin
}

var (
	// ErrNilDeck indicates a round was started without a deck.
	ErrNilDeck = errors.New("deck is required")
	// ErrShortDeck indicates the deck cannot cover the opening deal.
	ErrShortDeck = errors.New("deck is too small for the opening deal")
	// ErrRoundResolved indicates an action on an already resolved round.
	ErrRoundResolved = errors.New("round is already resolved")
	// ErrDeckExhausted indicates a hit was requested with no cards left.
	ErrDeckExhausted = errors.New("deck is exhausted")
)

const openingHandSize = 2

// Round tracks one round of play from the opening deal to resolution.
type Round struct {
	deck    *deck.Deck
	dealer  []deck.Card
	player  []deck.Card
	phase   Phase
	outcome Outcome
}

// New deals a round from the provided deck: two cards to the dealer,
// then two to the player, all drawn from the deck's tail. The deck is
// owned by the round afterwards.
func New(d *deck.Deck) (*Round, error) {
	if d == nil {
		return nil, ErrNilDeck
	}
	if d.Remaining() < 2*openingHandSize {
		return nil, ErrShortDeck
	}

	dealer, err := d.Draw(openingHandSize)
	if err != nil {
		return nil, fmt.Errorf("deal dealer hand: %w", err)
	}
	player, err := d.Draw(openingHandSize)
	if err != nil {
		return nil, fmt.Errorf("deal player hand: %w", err)
	}

	return &Round{
		deck:   d,
		dealer: dealer,
		player: player,
		phase:  PhaseAwaitingChoice,
	}, nil
}

// Deal builds a fresh shuffled deck and deals a round from it.
func Deal(rng *rand.Rand) (*Round, error) {
	d := deck.New()
	d.Shuffle(rng)
	return New(d)
}

// Hit draws one card for the player. A total over the bust limit
// resolves the round as a player bust. An empty deck resolves the round
// as a deck-exhaustion loss instead of failing the draw.
func (r *Round) Hit() (deck.Card, error) {
	if r.phase != PhaseAwaitingChoice {
		return deck.Card{}, ErrRoundResolved
	}
	if r.deck.Remaining() == 0 {
		r.resolve(OutcomeDeckExhausted)
		return deck.Card{}, ErrDeckExhausted
	}

	drawn, err := r.deck.Draw(1)
	if err != nil {
		return deck.Card{}, fmt.Errorf("draw hit card: %w", err)
	}
	r.player = append(r.player, drawn[0])

	if score.IsBust(r.PlayerTotal()) {
		r.resolve(OutcomePlayerBust)
	}
	return drawn[0], nil
}

// Stand resolves the round by comparing totals. The dealer hand never
// grows; ties go to the player.
func (r *Round) Stand() (Outcome, error) {
	if r.phase != PhaseAwaitingChoice {
		return OutcomeUnspecified, ErrRoundResolved
	}
	if score.Beats(r.PlayerTotal(), r.DealerTotal()) {
		r.resolve(OutcomePlayerWin)
	} else {
		r.resolve(OutcomeDealerWin)
	}
	return r.outcome, nil
}

func (r *Round) resolve(outcome Outcome) {
	r.phase = PhaseResolved
	r.outcome = outcome
}

// Dealer returns a copy of the dealer hand in deal order.
func (r *Round) Dealer() []deck.Card {
	return copyCards(r.dealer)
}

// Player returns a copy of the player hand in deal order.
func (r *Round) Player() []deck.Card {
	return copyCards(r.player)
}

// DealerTotal returns the dealer hand total.
func (r *Round) DealerTotal() int {
	return score.Total(r.dealer)
}

// PlayerTotal returns the player hand total.
func (r *Round) PlayerTotal() int {
	return score.Total(r.player)
}

// Phase returns the round's lifecycle phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// Outcome returns the terminal outcome, or OutcomeUnspecified while the
// round is still in play.
func (r *Round) Outcome() Outcome {
	return r.outcome
}

// Remaining reports how many cards are left in the round's deck.
func (r *Round) Remaining() int {
	return r.deck.Remaining()
}

func copyCards(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	copy(out, cards)
	return out
}
