// Package report renders showdowns and simulation results for the console.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/fivecardstud/internal/showdown"
	"github.com/lox/fivecardstud/internal/simulate"
	"github.com/lox/fivecardstud/poker"
)

// CardsPerLine is how many cards a full deck listing prints per row.
const CardsPerLine = 13

const (
	Banner        = "*** P O K E R    H A N D    A N A L Y Z E R ***"
	WinningHeader = "--- WINNING HAND ORDER ---"
)

type styles struct {
	banner  lipgloss.Style
	section lipgloss.Style
	cards   lipgloss.Style
	rank    lipgloss.Style
	winner  lipgloss.Style
	errors  lipgloss.Style
	muted   lipgloss.Style
}

// Printer writes reports to a writer.
type Printer struct {
	w      io.Writer
	styles styles
}

// New returns a Printer for w. With plain set, no colour or text attributes
// are emitted, regardless of the terminal.
func New(w io.Writer, plain bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w: w,
		styles: styles{
			banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
			section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			cards:   r.NewStyle().Foreground(lipgloss.Color("14")),
			rank:    r.NewStyle().Foreground(lipgloss.Color("11")),
			winner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
			errors:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		},
	}
}

func (p *Printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Banner prints the program banner.
func (p *Printer) Banner() {
	p.println(p.styles.banner.Render(Banner))
}

// Showdown prints a complete deal the way its source calls for: the shuffled
// deck, hands and leftover cards for random deals; the echoed file and hands
// for file deals; then the winning order.
func (p *Printer) Showdown(s *showdown.Showdown) {
	switch s.Source {
	case showdown.SourceRandom:
		p.println()
		p.println()
		p.println(p.styles.section.Render("*** USING RANDOMIZED DECK OF CARDS ***"))
		p.println()
		p.println(p.styles.section.Render("*** Shuffled 52 card deck:"))
		p.Deck(s.Deck, false)
		p.Hands(s.Hands)
		p.println(p.styles.section.Render("*** Here is what remains in the deck..."))
		p.Deck(s.Remaining, true)
		p.println()
	case showdown.SourceFile:
		p.TestDeck(s.File, s.Lines)
		p.println()
		p.Hands(s.Hands)
	default:
		p.println()
		p.Hands(s.Hands)
	}
	p.Ranking(s.Ranking)
}

// Deck prints cards, CardsPerLine per row unless singleLine is set.
func (p *Printer) Deck(cards []poker.Card, singleLine bool) {
	var b strings.Builder
	for i, c := range cards {
		b.WriteString(c.String())
		b.WriteByte(' ')
		if !singleLine && (i+1)%CardsPerLine == 0 && i+1 < len(cards) {
			b.WriteByte('\n')
		}
	}
	for _, line := range strings.Split(b.String(), "\n") {
		p.println(p.styles.cards.Render(strings.TrimRight(line, " ")))
	}
}

// TestDeck prints the test-deck header followed by the file's lines.
func (p *Printer) TestDeck(file string, lines []string) {
	p.println()
	p.println()
	p.println(p.styles.section.Render("*** USING TEST DECK ***"))
	p.println()
	p.println(p.styles.section.Render("*** File: " + file))
	p.Lines(lines)
}

// Lines echoes raw input lines.
func (p *Printer) Lines(lines []string) {
	for _, line := range lines {
		p.println(p.styles.muted.Render(line))
	}
}

// Hands prints each hand on its own line in deal order.
func (p *Printer) Hands(hands []poker.Hand) {
	p.println(p.styles.section.Render(fmt.Sprintf("*** Here are the %s hands...", countWord(len(hands)))))
	for _, h := range hands {
		p.println(p.styles.cards.Render(h.String()))
	}
	p.println()
}

// Ranking prints the winning order, strongest first.
func (p *Printer) Ranking(ranking []poker.Ranked) {
	p.println(p.styles.section.Render(WinningHeader))
	for i, r := range ranking {
		cards := p.styles.cards
		if i == 0 {
			cards = p.styles.winner
		}
		p.println(cards.Render(r.Hand.String()) + " - " + p.styles.rank.Render(r.Rank.String()))
	}
	p.println()
}

// Duplicate prints the duplicate-card error block.
func (p *Printer) Duplicate(card poker.Card) {
	p.println()
	p.println(p.styles.errors.Render("*** ERROR - DUPLICATED CARD FOUND IN DECK ***"))
	p.println()
	p.println()
	p.println(p.styles.errors.Render(fmt.Sprintf("*** DUPLICATE: %s ***", card)))
}

// Verified prints the outcome of replaying a stored showdown.
func (p *Printer) Verified(id string, err error) {
	if err != nil {
		p.println(p.styles.errors.Render("MISMATCH ") + id + ": " + err.Error())
		return
	}
	p.println(p.styles.winner.Render("OK ") + id)
}

// Tally prints a category frequency table for a simulation run.
func (p *Printer) Tally(t simulate.Tally, elapsed time.Duration) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Category\tHands\tFrequency\tWins\tWin share\t")
	for i := poker.NumHandRanks - 1; i >= 0; i-- {
		r := poker.HandRanks[i]
		fmt.Fprintf(tw, "%s\t%d\t%.4f%%\t%d\t%.4f%%\t\n",
			r, t.Counts[r], 100*t.Frequency(r), t.Wins[r], 100*t.WinShare(r))
	}
	tw.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	p.println(p.styles.section.Render(lines[0]))
	for _, line := range lines[1:] {
		p.println(line)
	}
	p.println()
	p.println(p.styles.muted.Render(fmt.Sprintf("%d deals, %d hands in %s", t.Deals, t.Hands, elapsed.Round(time.Millisecond))))
}

var numberWords = [...]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

func countWord(n int) string {
	if n >= 0 && n < len(numberWords) {
		return numberWords[n]
	}
	return fmt.Sprint(n)
}
