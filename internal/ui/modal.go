package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/params"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Init() tea.Cmd
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// priceDialog edits the minimum and maximum price of the listing.
type priceDialog struct {
	inputs [2]textinput.Model
	focus  int
	err    string
}

func newPriceDialog(current params.Mapping) priceDialog {
	mk := func(label, value string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = label
		ti.Placeholder = "0.00"
		ti.CharLimit = 12
		ti.Width = 12
		ti.SetValue(value)
		return ti
	}
	d := priceDialog{inputs: [2]textinput.Model{
		mk("Min price: ", current.Get(params.KeyMinPrice, params.DefaultMinPrice)),
		mk("Max price: ", current.Get(params.KeyMaxPrice, params.DefaultMaxPrice)),
	}}
	d.inputs[0].Focus()
	return d
}

func (d priceDialog) Init() tea.Cmd {
	return textinput.Blink
}

func (d priceDialog) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Cancel):
			return d, nil, true
		case key.Matches(msg, keys.Switch):
			d.inputs[d.focus].Blur()
			d.focus = (d.focus + 1) % len(d.inputs)
			return d, d.inputs[d.focus].Focus(), false
		case key.Matches(msg, keys.Confirm):
			lo, hi, err := d.values()
			if err != nil {
				d.err = err.Error()
				return d, nil, false
			}
			return d, func() tea.Msg { return priceRangeMsg{min: lo, max: hi} }, true
		}
	}

	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	return d, cmd, false
}

// values validates the entered range with the same rules the listing applies
// when the price filter is on.
func (d priceDialog) values() (string, string, error) {
	lo := strings.TrimSpace(d.inputs[0].Value())
	hi := strings.TrimSpace(d.inputs[1].Value())
	_, err := params.ParseQuery(params.Mapping{
		params.KeyMinPrice:       lo,
		params.KeyMaxPrice:       hi,
		params.KeyUsePriceFilter: "true",
	})
	if err != nil {
		return "", "", err
	}
	if lo == "" {
		lo = params.DefaultMinPrice
	}
	if hi == "" {
		hi = params.DefaultMaxPrice
	}
	return lo, hi, nil
}

func (d priceDialog) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Price range"))
	b.WriteString("\n\n")
	for _, in := range d.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if d.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(d.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("tab switch · enter apply · esc cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Width(44).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
