package theme

import "github.com/charmbracelet/lipgloss"

// Colours mirroring the web palette.
const (
	colorGray800    = lipgloss.Color("#1F2937")
	colorNeutral400 = lipgloss.Color("#A3A3A3")
	colorWhite      = lipgloss.Color("#FFFFFF")
	colorBlack      = lipgloss.Color("#000000")
	colorPink500    = lipgloss.Color("#EC4899")
	colorPurple500  = lipgloss.Color("#A855F7")
	colorBlue600    = lipgloss.Color("#2563EB")
	colorBlue700    = lipgloss.Color("#1D4ED8")
	colorGray500    = lipgloss.Color("#6B7280")
	colorRed500     = lipgloss.Color("#EF4444")
)

// Palette is the set of styles the history view renders with.
type Palette struct {
	Dark bool

	Header   lipgloss.Style // "History ;)"
	Label    lipgloss.Style // "Shortened URL:" / "Original URL:"
	Item     lipgloss.Style // unselected card
	Selected lipgloss.Style // selected card
	Button   lipgloss.Style // key hints
	Empty    lipgloss.Style // empty-state message
	Status   lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

// NewPalette returns the dark or light palette.
func NewPalette(dark bool) Palette {
	p := Palette{
		Dark:   dark,
		Header: lipgloss.NewStyle().Bold(true).Foreground(colorPink500).MarginBottom(1),
		Label:  lipgloss.NewStyle().Bold(true).Foreground(colorPurple500),
		Empty:  lipgloss.NewStyle().Foreground(colorGray500),
		Error:  lipgloss.NewStyle().Foreground(colorRed500),
		Muted:  lipgloss.NewStyle().Foreground(colorGray500),
	}

	card := lipgloss.NewStyle().Padding(0, 2)
	if dark {
		p.Item = card.Foreground(colorWhite).Background(colorGray800)
		p.Button = lipgloss.NewStyle().Foreground(colorWhite).Background(colorBlue700).Padding(0, 1)
		p.Status = lipgloss.NewStyle().Foreground(colorWhite)
	} else {
		p.Item = card.Foreground(colorBlack).Background(colorNeutral400)
		p.Button = lipgloss.NewStyle().Foreground(colorWhite).Background(colorBlue600).Padding(0, 1)
		p.Status = lipgloss.NewStyle().Foreground(colorBlack)
	}
	p.Selected = p.Item.
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(colorBlue600).
		PaddingLeft(1)

	return p
}

// Palette returns the palette for the resolver's current state.
func (r *Resolver) Palette() Palette {
	return NewPalette(r.Dark())
}
