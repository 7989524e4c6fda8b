package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/nav"
)

// renderHeader renders the top bar: logo, current location and cart summary.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.Logo.Render("storefront") + "  " + styles.MutedText.Render(m.history.Location().String())

	right := fmt.Sprintf("cart: %d · %s", m.cart.Count(), formatPrice(m.cart.Total()))
	if m.session.View() == nav.PathDetails {
		if snap := m.session.Detail.Snapshot(); snap.Loading() {
			right = m.spinner.View() + " " + right
		}
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderFooter shows the flash message, if any, above the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var b strings.Builder
	if m.flash != "" {
		b.WriteString(styles.InfoText.Render(m.flash))
		b.WriteString("\n")
	}
	var keys string
	if m.session.View() == nav.PathDetails {
		keys = m.help.View(detailHelp{m.keys})
	} else {
		keys = m.help.View(searchHelp{m.keys})
	}
	b.WriteString(styles.Footer.Width(m.width).Render(keys))
	return b.String()
}

// renderError renders the error banner, or "" when err is nil.
func (m Model) renderError(err error, offline bool) string {
	if err == nil {
		return ""
	}
	styles := m.theme.Styles()
	msg := "Error: " + err.Error()
	if offline {
		msg = "Catalog unreachable: " + err.Error()
	}
	return styles.Banner.Render(truncate(msg, max(m.width-2, 10))) + "\n"
}
