package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/state"
)

const descriptionHeight = 6

// renderDetail renders one item with its quantity selector and related items.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	snap := m.session.Detail.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderError(snap.LastError, false))

	if snap.Item == nil {
		if snap.Loading() {
			b.WriteString(m.spinner.View() + " " + styles.MutedText.Render("Loading item..."))
		} else {
			b.WriteString(styles.FaintText.Render("No item to show."))
		}
		b.WriteString("\n")
		return b.String()
	}

	it := snap.Item
	b.WriteString(styles.Title.Render(it.Name))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(it.Category))
	b.WriteString("\n\n")
	b.WriteString("Price: " + styles.Price.Render(formatPrice(it.Price)))
	b.WriteString("\n")
	if it.Popular {
		b.WriteString(styles.WarningText.Render("(Popular product)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.AccentText.Render("Product description"))
	b.WriteString("\n")
	b.WriteString(styles.Panel.Width(max(m.width-4, 20)).Render(m.description.View()))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Quantity: %s", styles.Text.Bold(true).Render(fmt.Sprintf("[ %d ]", m.quantity))))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("a: add to cart"))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Render("Related items"))
	b.WriteString("\n")
	if len(snap.RelatedItems) == 0 {
		if snap.Loading() {
			b.WriteString(m.spinner.View())
		} else {
			b.WriteString(styles.FaintText.Render("None"))
		}
		b.WriteString("\n")
	}
	for i, r := range snap.RelatedItems {
		line := fmt.Sprintf("%s  %s", truncate(r.Name, max(m.width-20, 16)), formatPrice(r.Price))
		if i == m.related {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// descriptionText is what the description panel shows for an item.
func descriptionText(snap state.DetailSnapshot) string {
	if snap.Item == nil {
		return ""
	}
	if d := strings.TrimSpace(snap.Item.Description); d != "" {
		return d
	}
	return "Not available"
}

func (m *Model) resizeDescription() {
	m.description.Width = max(m.width-6, 10)
	m.description.Height = descriptionHeight
	m.updateDescription()
}

func (m *Model) updateDescription() {
	text := descriptionText(m.session.Detail.Snapshot())
	m.description.SetContent(lipgloss.NewStyle().Width(m.description.Width).Render(text))
}
