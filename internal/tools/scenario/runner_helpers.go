package scenario

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/louisbranch/blackjack/internal/deck"
	"github.com/louisbranch/blackjack/internal/random"
	"github.com/louisbranch/blackjack/internal/round"
)

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

// ensureRound deals a round with the scenario's deck controls if no
// step has dealt one yet.
func (r *Runner) ensureRound(state *runState) error {
	if state.round != nil {
		return nil
	}
	return r.dealRound(state, nil)
}

// dealRound builds the deck and deals the opening hands. The runner
// seed wins over the deal step's seed, which wins over the scenario's.
func (r *Runner) dealRound(state *runState, args map[string]any) error {
	seed := r.seed
	if seed == 0 {
		if value, ok := readInt(args, "seed"); ok {
			seed = int64(value)
		} else {
			seed = state.scenario.Seed
		}
	}
	if seed == 0 {
		generated, err := random.NewSeed()
		if err != nil {
			return fmt.Errorf("generate seed: %w", err)
		}
		seed = generated
	}

	unshuffled := state.scenario.Unshuffled
	if value, ok := readBool(args, "unshuffled"); ok {
		unshuffled = value
	}

	d := deck.New()
	if !unshuffled {
		d.Shuffle(rand.New(rand.NewSource(seed)))
	}

	if burn, ok := readInt(args, "burn"); ok && burn != 0 {
		if burn < 0 {
			return r.failf("burn count must be positive")
		}
		if _, err := d.Draw(burn); err != nil {
			return r.failf("burn %d cards: %v", burn, err)
		}
	}

	dealt, err := round.New(d)
	if err != nil {
		return fmt.Errorf("deal round: %w", err)
	}
	state.round = dealt
	r.logf("dealt: dealer %d, player %d, %d cards left", dealt.DealerTotal(), dealt.PlayerTotal(), dealt.Remaining())
	return nil
}

func parseOutcome(value string) (round.Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "win":
		return round.OutcomePlayerWin, nil
	case "loss":
		return round.OutcomeDealerWin, nil
	case "bust":
		return round.OutcomePlayerBust, nil
	case "deck_exhausted":
		return round.OutcomeDeckExhausted, nil
	default:
		return round.OutcomeUnspecified, fmt.Errorf("unknown outcome %q", value)
	}
}

func parsePhase(value string) (round.Phase, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "awaiting_choice":
		return round.PhaseAwaitingChoice, nil
	case "resolved":
		return round.PhaseResolved, nil
	default:
		return round.PhaseUnspecified, fmt.Errorf("unknown phase %q", value)
	}
}

func requiredString(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return ""
}

func readInt(args map[string]any, key string) (int, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case int:
		return typed, true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func readBool(args map[string]any, key string) (bool, bool) {
	value, ok := args[key]
	if !ok {
		return false, false
	}
	switch typed := value.(type) {
	case bool:
		return typed, true
	case string:
		lower := strings.ToLower(strings.TrimSpace(typed))
		switch lower {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	}
	return false, false
}
