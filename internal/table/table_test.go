package table

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/louisbranch/blackjack/internal/deck"
	"github.com/louisbranch/blackjack/internal/platform/i18n"
	"github.com/louisbranch/blackjack/internal/round"
)

const clearSeq = "\x1b[2J"

// tableLocalizer mirrors the full en-US catalog so loop tests can assert
// byte-exact transcripts without depending on catalog registration.
func tableLocalizer() fakeLocalizer {
	return fakeLocalizer{values: map[string]string{
		"table.welcome_banner": "--- Welcome to Matt's Blackjack table! ---",
		"table.start_prompt":   "Press any key to start playing.",
		"table.round_banner":   "--- Matt's Blackjack table ---",
		"table.dealer_heading": "Dealer cards:",
		"table.player_heading": "Your cards:",
		"table.hidden_card":    "* ??",
		"table.card_line":      "* %s",
		"table.hand_total":     "* Total: %d",
		"table.options":        "\nOptions\n1.) Hit\n2.) Stay\n    ",
		"table.invalid_option": "Invalid option. Please select either 'Hit' or 'Stay'.",
		"table.bust":           "You went over %d! Game over.",
		"table.deck_empty":     "The deck is out of cards! Game over.",
		"table.loss":           "You lost! [Dealer score (%d) > Player score (%d)]",
		"table.win":            "You won! [Dealer score: (%d) < Player score: (%d)]",
		"table.thanks":         "Thanks for playing!",
		"card.label":           "%s of %s",
		"card.rank.two":        "Two",
		"card.rank.three":      "Three",
		"card.rank.four":       "Four",
		"card.rank.five":       "Five",
		"card.rank.six":        "Six",
		"card.rank.seven":      "Seven",
		"card.rank.eight":      "Eight",
		"card.rank.nine":       "Nine",
		"card.rank.ten":        "Ten",
		"card.rank.jack":       "Jack",
		"card.rank.queen":      "Queen",
		"card.rank.king":       "King",
		"card.rank.ace":        "Ace",
		"card.suit.spades":     "Spades",
		"card.suit.hearts":     "Hearts",
		"card.suit.diamonds":   "Diamonds",
		"card.suit.clubs":      "Clubs",
	}}
}

// dealFixture deals from a fresh deck after burning the top burn cards,
// giving each test a known pair of hands.
func dealFixture(t *testing.T, burn int) *round.Round {
	t.Helper()
	d := deck.New()
	if burn > 0 {
		if _, err := d.Draw(burn); err != nil {
			t.Fatalf("burn %d cards: %v", burn, err)
		}
	}
	r, err := round.New(d)
	if err != nil {
		t.Fatalf("deal round: %v", err)
	}
	return r
}

// Fresh deck deal: dealer King and Ace of Clubs (21), player Jack and
// Queen of Clubs (20), Ten of Clubs on top of the deck.
const freshDeckTable = clearSeq +
	"Dealer cards:\n* ??\n* Ace of Clubs\n\n" +
	"Your cards:\n* Jack of Clubs\n* Queen of Clubs\n* Total: 20\n\n" +
	"\nOptions\n1.) Hit\n2.) Stay\n    \n"

func TestRunRoundStandLoss(t *testing.T) {
	r := dealFixture(t, 0)
	out := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader("2\n"))

	won, err := runRound(context.Background(), r, tableLocalizer(), out, scanner)
	if err != nil {
		t.Fatalf("run round: %v", err)
	}
	if won {
		t.Fatal("expected a loss")
	}

	want := strings.Repeat(freshDeckTable, 2) +
		"You lost! [Dealer score (21) > Player score (20)]\n"
	if got := out.String(); got != want {
		t.Fatalf("transcript = %q, want %q", got, want)
	}
}

func TestRunRoundStandTieFavorsPlayer(t *testing.T) {
	// Burn one card: dealer Queen and King of Clubs (20), player Ten and
	// Jack of Clubs (20).
	r := dealFixture(t, 1)
	out := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader("2\n"))

	won, err := runRound(context.Background(), r, tableLocalizer(), out, scanner)
	if err != nil {
		t.Fatalf("run round: %v", err)
	}
	if !won {
		t.Fatal("expected the tie to count as a win")
	}
	if !strings.HasSuffix(out.String(), "You won! [Dealer score: (20) < Player score: (20)]\n") {
		t.Fatalf("transcript = %q", out.String())
	}
}

func TestRunRoundHitBust(t *testing.T) {
	r := dealFixture(t, 0)
	out := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader("1\n"))

	won, err := runRound(context.Background(), r, tableLocalizer(), out, scanner)
	if err != nil {
		t.Fatalf("run round: %v", err)
	}
	if won {
		t.Fatal("expected a bust")
	}

	want := strings.Repeat(freshDeckTable, 2) +
		"Your cards:\n* Jack of Clubs\n* Queen of Clubs\n* Ten of Clubs\n* Total: 30\n\n" +
		"You went over 21! Game over.\n" +
		"Thanks for playing!\n"
	if got := out.String(); got != want {
		t.Fatalf("transcript = %q, want %q", got, want)
	}
}

func TestRunRoundHitThenStandWins(t *testing.T) {
	// Burn four cards: dealer Nine and Ten of Clubs (19), player Seven and
	// Eight of Clubs (15), Six of Clubs on top of the deck.
	r := dealFixture(t, 4)
	out := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader("1\n2\n"))

	won, err := runRound(context.Background(), r, tableLocalizer(), out, scanner)
	if err != nil {
		t.Fatalf("run round: %v", err)
	}
	if !won {
		t.Fatal("expected a win after hitting to 21")
	}
	if !strings.HasSuffix(out.String(), "You won! [Dealer score: (19) < Player score: (21)]\n") {
		t.Fatalf("transcript = %q", out.String())
	}
	if !strings.Contains(out.String(), "* Six of Clubs\n* Total: 21\n") {
		t.Fatalf("expected drawn card in transcript: %q", out.String())
	}
}

func TestRunRoundInvalidChoiceKeepsRoundOpen(t *testing.T) {
	r := dealFixture(t, 0)
	out := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader("9\n2\n"))

	won, err := runRound(context.Background(), r, tableLocalizer(), out, scanner)
	if err != nil {
		t.Fatalf("run round: %v", err)
	}
	if won {
		t.Fatal("expected a loss")
	}

	want := strings.Repeat(freshDeckTable, 2) +
		"Invalid option. Please select either 'Hit' or 'Stay'.\n" +
		freshDeckTable +
		"You lost! [Dealer score (21) > Player score (20)]\n"
	if got := out.String(); got != want {
		t.Fatalf("transcript = %q, want %q", got, want)
	}
}

func TestRunRoundQuietWhenInputEnds(t *testing.T) {
	r := dealFixture(t, 0)
	out := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader(""))

	won, err := runRound(context.Background(), r, tableLocalizer(), out, scanner)
	if err != nil {
		t.Fatalf("run round: %v", err)
	}
	if won {
		t.Fatal("expected an unresolved round to fold")
	}
	if got := out.String(); got != freshDeckTable {
		t.Fatalf("transcript = %q, want %q", got, freshDeckTable)
	}
}

func TestRunRoundDeckExhaustedEndsGame(t *testing.T) {
	// Burn down to four cards so the opening deal empties the deck.
	r := dealFixture(t, deck.Size-4)
	out := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader("1\n"))

	won, err := runRound(context.Background(), r, tableLocalizer(), out, scanner)
	if err != nil {
		t.Fatalf("run round: %v", err)
	}
	if won {
		t.Fatal("expected an exhausted deck to end the game")
	}
	wantTail := "The deck is out of cards! Game over.\nThanks for playing!\n"
	if !strings.HasSuffix(out.String(), wantTail) {
		t.Fatalf("transcript = %q, want suffix %q", out.String(), wantTail)
	}
}

func TestRunRoundStopsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := dealFixture(t, 0)
	out := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader("2\n"))

	_, err := runRound(ctx, r, tableLocalizer(), out, scanner)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunStartupInputClosed(t *testing.T) {
	out := &bytes.Buffer{}
	rng := rand.New(rand.NewSource(1))

	_, err := Run(context.Background(), rng, tableLocalizer(), out, strings.NewReader(""))
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("err = %v, want ErrInputClosed", err)
	}

	want := "--- Welcome to Matt's Blackjack table! ---\nPress any key to start playing.\n"
	if got := out.String(); got != want {
		t.Fatalf("startup output = %q, want %q", got, want)
	}
}

func TestRunValidatesArguments(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))
	loc := tableLocalizer()
	out := &bytes.Buffer{}
	in := strings.NewReader("")

	tests := []struct {
		name string
		run  func() (bool, error)
	}{
		{"nil rng", func() (bool, error) { return Run(ctx, nil, loc, out, in) }},
		{"nil localizer", func() (bool, error) { return Run(ctx, rng, nil, out, in) }},
		{"nil output", func() (bool, error) { return Run(ctx, rng, loc, nil, in) }},
		{"nil input", func() (bool, error) { return Run(ctx, rng, loc, out, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.run(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRunPlaysSeededRoundWithCatalogPrinter(t *testing.T) {
	out := &bytes.Buffer{}
	rng := rand.New(rand.NewSource(7))
	loc := i18n.Printer(i18n.ResolveTag("en-US"))

	won, err := Run(context.Background(), rng, loc, out, strings.NewReader("\n2\n"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"--- Welcome to Matt's Blackjack table! ---",
		"Press any key to start playing.",
		"--- Matt's Blackjack table ---",
		"Dealer cards:",
		"* ??",
		"Your cards:",
		"1.) Hit",
		"2.) Stay",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
	if won {
		if !strings.Contains(output, "You won!") {
			t.Fatalf("expected win message:\n%s", output)
		}
	} else if !strings.Contains(output, "You lost!") {
		t.Fatalf("expected loss message:\n%s", output)
	}
}
