package ui

import (
	"fmt"
	"strings"

	"github.com/five82/storefront/internal/paging"
	"github.com/five82/storefront/internal/params"
	"github.com/five82/storefront/internal/state"
)

// renderSearch renders the listing view: title, filter bar, result count,
// items and pagination.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	snap := m.session.Search.Snapshot()

	var b strings.Builder
	b.WriteString(styles.Title.Render(snap.Title))
	b.WriteString("\n")
	b.WriteString(m.renderFilters(snap.Params))
	b.WriteString("\n")
	b.WriteString(m.renderError(snap.LastError, snap.IsOffline()))

	if snap.Loading() {
		b.WriteString(m.spinner.View() + " " + styles.MutedText.Render("Loading..."))
		b.WriteString("\n")
	} else if snap.HasResult {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Total results found: %d", snap.TotalItemsCount)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderItems(snap))

	if !snap.Loading() {
		if line := m.renderPaging(snap); line != "" {
			b.WriteString("\n")
			b.WriteString(line)
		}
	}
	return b.String()
}

func (m Model) renderFilters(current params.Mapping) string {
	styles := m.theme.Styles()
	q, err := params.ParseQuery(current)
	if err != nil {
		return styles.FaintText.Render("filters unavailable")
	}
	category := "all"
	if q.HasCategory {
		category = q.Category
	}
	parts := []string{
		"category: " + styles.AccentText.Render(category),
		fmt.Sprintf("price: %s–%s (%s)", formatPrice(q.MinPrice), formatPrice(q.MaxPrice), onOff(q.UsePriceFilter)),
		"sort: " + q.Sort.Label(),
		fmt.Sprintf("per page: %d", q.ItemsPerPage),
	}
	return styles.MutedText.Render(strings.Join(parts, " · "))
}

func (m Model) renderItems(snap state.SearchSnapshot) string {
	styles := m.theme.Styles()
	if len(snap.Items) == 0 {
		if snap.HasResult && !snap.Loading() {
			return styles.FaintText.Render("No items match.") + "\n"
		}
		return ""
	}

	nameWidth := max(m.width-24, 16)
	var b strings.Builder
	for i, it := range snap.Items {
		name := padRight(truncate(it.Name, nameWidth), nameWidth)
		line := name + " " + padRight(formatPrice(it.Price), 12)
		if it.Popular {
			line += "★"
		}
		if i == m.selected {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderPaging renders the page controls, dimming the disabled ones. It
// returns "" when there is nothing to page through.
func (m Model) renderPaging(snap state.SearchSnapshot) string {
	styles := m.theme.Styles()
	q, err := params.ParseQuery(snap.Params)
	if err != nil || snap.TotalItemsCount == 0 {
		return ""
	}
	c, err := paging.FromQuery(q, snap.TotalItemsCount)
	if err != nil {
		return ""
	}
	control := func(label string, enabled bool) string {
		if enabled {
			return styles.AccentText.Render(label)
		}
		return styles.FaintText.Render(label)
	}
	return strings.Join([]string{
		control("« first", c.FirstEnabled()),
		control("‹ prev", c.PrevEnabled()),
		styles.Text.Render(c.Label()),
		control("next ›", c.NextEnabled()),
		control("last »", c.LastEnabled()),
	}, "  ")
}
