package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/blackjack/internal/round"
)

func (r *Runner) runStep(ctx context.Context, state *runState, step Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch step.Kind {
	case "deal":
		return r.runDealStep(state, step)
	case "input":
		return r.runInputStep(state, step)
	case "expect_outcome":
		return r.runExpectOutcomeStep(state, step)
	case "expect_phase":
		return r.runExpectPhaseStep(state, step)
	case "expect_player_total":
		return r.runExpectPlayerTotalStep(state, step)
	case "expect_dealer_total":
		return r.runExpectDealerTotalStep(state, step)
	case "expect_remaining":
		return r.runExpectRemainingStep(state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runDealStep(state *runState, step Step) error {
	if state.round != nil {
		return r.failf("round is already dealt")
	}
	return r.dealRound(state, step.Args)
}

func (r *Runner) runInputStep(state *runState, step Step) error {
	text := requiredString(step.Args, "text")
	if text == "" {
		return r.failf("input text is required")
	}
	if err := r.ensureRound(state); err != nil {
		return err
	}

	switch text {
	case choiceHit:
		card, err := state.round.Hit()
		switch {
		case errors.Is(err, round.ErrDeckExhausted):
			r.logf("hit: deck exhausted")
			return nil
		case errors.Is(err, round.ErrRoundResolved):
			return r.failf("round is already resolved")
		case err != nil:
			return fmt.Errorf("hit: %w", err)
		}
		r.logf("hit: %s, player total %d", card, state.round.PlayerTotal())
	case choiceStand:
		outcome, err := state.round.Stand()
		if err != nil {
			if errors.Is(err, round.ErrRoundResolved) {
				return r.failf("round is already resolved")
			}
			return fmt.Errorf("stand: %w", err)
		}
		r.logf("stand: %s", outcome)
	default:
		// The table re-prompts on anything else; so does the runner.
		r.logf("input %q ignored", text)
	}
	return nil
}

func (r *Runner) runExpectOutcomeStep(state *runState, step Step) error {
	want, err := parseOutcome(requiredString(step.Args, "outcome"))
	if err != nil {
		return err
	}
	if err := r.ensureRound(state); err != nil {
		return err
	}
	if got := state.round.Outcome(); got != want {
		return r.assertf("outcome = %s, want %s", got, want)
	}
	return nil
}

func (r *Runner) runExpectPhaseStep(state *runState, step Step) error {
	want, err := parsePhase(requiredString(step.Args, "phase"))
	if err != nil {
		return err
	}
	if err := r.ensureRound(state); err != nil {
		return err
	}
	if got := state.round.Phase(); got != want {
		return r.assertf("phase = %s, want %s", got, want)
	}
	return nil
}

func (r *Runner) runExpectPlayerTotalStep(state *runState, step Step) error {
	want, ok := readInt(step.Args, "total")
	if !ok {
		return r.failf("expect_player_total requires a total")
	}
	if err := r.ensureRound(state); err != nil {
		return err
	}
	if got := state.round.PlayerTotal(); got != want {
		return r.assertf("player total = %d, want %d", got, want)
	}
	return nil
}

func (r *Runner) runExpectDealerTotalStep(state *runState, step Step) error {
	want, ok := readInt(step.Args, "total")
	if !ok {
		return r.failf("expect_dealer_total requires a total")
	}
	if err := r.ensureRound(state); err != nil {
		return err
	}
	if got := state.round.DealerTotal(); got != want {
		return r.assertf("dealer total = %d, want %d", got, want)
	}
	return nil
}

func (r *Runner) runExpectRemainingStep(state *runState, step Step) error {
	want, ok := readInt(step.Args, "count")
	if !ok {
		return r.failf("expect_remaining requires a count")
	}
	if err := r.ensureRound(state); err != nil {
		return err
	}
	if got := state.round.Remaining(); got != want {
		return r.assertf("remaining cards = %d, want %d", got, want)
	}
	return nil
}
