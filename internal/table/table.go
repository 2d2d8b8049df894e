// Package table runs the interactive terminal blackjack table.
package table

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/louisbranch/blackjack/internal/round"
	"github.com/louisbranch/blackjack/internal/score"
)

// ErrInputClosed reports that input ended before the table could start.
var ErrInputClosed = errors.New("input closed")

// Choices accepted at the options menu.
const (
	choiceHit   = "1"
	choiceStand = "2"
)

// Run greets the player, waits for a keypress, and plays a single round.
// It reports whether the player won the round.
func Run(ctx context.Context, rng *rand.Rand, loc Localizer, out io.Writer, in io.Reader) (bool, error) {
	if rng == nil {
		return false, errors.New("random source is required")
	}
	if loc == nil {
		return false, errors.New("localizer is required")
	}
	if out == nil {
		return false, errors.New("output is required")
	}
	if in == nil {
		return false, errors.New("input is required")
	}

	fmt.Fprintln(out, loc.Sprintf("table.welcome_banner"))
	fmt.Fprintln(out, loc.Sprintf("table.start_prompt"))

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("read start input: %w", err)
		}
		return false, ErrInputClosed
	}

	ClearScreen(out)
	fmt.Fprintln(out, loc.Sprintf("table.round_banner"))

	r, err := round.Deal(rng)
	if err != nil {
		return false, fmt.Errorf("deal round: %w", err)
	}

	return runRound(ctx, r, loc, out, scanner)
}

// runRound drives a dealt round until it resolves. The screen is redrawn
// before every choice is applied, so the table reflects the hands as they
// stood when the player decided.
func runRound(ctx context.Context, r *round.Round, loc Localizer, out io.Writer, scanner *bufio.Scanner) (bool, error) {
	renderTable(out, loc, r)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		choice := scanner.Text()
		renderTable(out, loc, r)

		switch choice {
		case choiceHit:
			_, err := r.Hit()
			switch {
			case errors.Is(err, round.ErrDeckExhausted):
				fmt.Fprintln(out, loc.Sprintf("table.deck_empty"))
				fmt.Fprintln(out, loc.Sprintf("table.thanks"))
				return false, nil
			case err != nil:
				return false, fmt.Errorf("hit: %w", err)
			}
			if r.Outcome() == round.OutcomePlayerBust {
				RenderPlayerHand(out, loc, r.Player())
				fmt.Fprintln(out, loc.Sprintf("table.bust", score.BustLimit))
				fmt.Fprintln(out, loc.Sprintf("table.thanks"))
				return false, nil
			}
		case choiceStand:
			outcome, err := r.Stand()
			if err != nil {
				return false, fmt.Errorf("stand: %w", err)
			}
			if outcome.PlayerWon() {
				fmt.Fprintln(out, loc.Sprintf("table.win", r.DealerTotal(), r.PlayerTotal()))
				return true, nil
			}
			fmt.Fprintln(out, loc.Sprintf("table.loss", r.DealerTotal(), r.PlayerTotal()))
			return false, nil
		default:
			fmt.Fprintln(out, loc.Sprintf("table.invalid_option"))
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("read choice: %w", err)
	}

	// Input ended mid-round; the table folds quietly.
	return false, nil
}

func renderTable(out io.Writer, loc Localizer, r *round.Round) {
	ClearScreen(out)
	RenderDealerHand(out, loc, r.Dealer())
	RenderPlayerHand(out, loc, r.Player())
	RenderOptions(out, loc)
}
