package search

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/iburimskiy/landing-fx/internal/config"
)

// NoResults is shown when a query matches nothing.
const NoResults = "No results found"

// Card is one static feature card.
type Card struct {
	Title   string
	Content string
	Tags    string
}

// DefaultCards are the feature cards shown on the page.
var DefaultCards = []Card{
	{Title: "Particle Backdrop", Content: "A hundred drifting points linked when they pass close to each other.", Tags: "particles animation canvas background"},
	{Title: "Live Search", Content: "Filter the feature cards as you type.", Tags: "search filter find"},
	{Title: "Audio Player", Content: "Play, pause, seek and set the volume of the background track.", Tags: "audio music sound player volume"},
	{Title: "Themes", Content: "Five colour themes, an automatic mode and high contrast.", Tags: "theme dark light colors auto contrast"},
	{Title: "Statistics", Content: "Counters that roll up to their target once revealed.", Tags: "stats counters numbers"},
	{Title: "Welcome", Content: "A greeting that closes itself after a short countdown.", Tags: "modal welcome countdown"},
}

// Result is one matching card.
type Result struct {
	Index int
	Card  Card
}

// Results is the outcome of a query. Hidden results are not displayed at all.
type Results struct {
	Visible bool
	Items   []Result
}

// Empty reports whether a visible result list should show NoResults.
func (r Results) Empty() bool { return r.Visible && len(r.Items) == 0 }

// Catalog is an immutable list of cards.
type Catalog struct {
	cards []Card
	text  []string
	tags  []string
}

func NewCatalog(cards []Card) *Catalog {
	c := &Catalog{cards: cards}
	for _, card := range cards {
		c.text = append(c.text, strings.ToLower(card.Title+" "+card.Content))
		c.tags = append(c.tags, strings.ToLower(card.Tags))
	}
	return c
}

func (c *Catalog) Cards() []Card { return c.cards }

// Filter matches the query against each card's text and tags, ignoring case.
// Queries shorter than two characters hide the result list.
func (c *Catalog) Filter(query string) Results {
	term := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(term) < config.SearchMinRunes {
		return Results{}
	}

	res := Results{Visible: true}
	for i, card := range c.cards {
		if strings.Contains(c.text[i], term) || strings.Contains(c.tags[i], term) {
			res.Items = append(res.Items, Result{Index: i, Card: card})
		}
	}
	return res
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#667EEA"))
	bodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A4B8"))
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#CF6679"))
)

// Format renders results for a terminal.
func Format(r Results) string {
	if !r.Visible {
		return ""
	}
	if r.Empty() {
		return emptyStyle.Render(NoResults) + "\n"
	}
	var b strings.Builder
	for _, item := range r.Items {
		b.WriteString(titleStyle.Render(item.Card.Title))
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(item.Card.Content))
		b.WriteString("\n\n")
	}
	return b.String()
}
