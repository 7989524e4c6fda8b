package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/nav"
	"github.com/five82/storefront/internal/paging"
	"github.com/five82/storefront/internal/params"
)

// perPageChoices are offered in order by the items-per-page key.
var perPageChoices = []int{5, 10, 20, 50}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var done bool
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.history.Back()
		return m, nil
	}

	if m.session.View() == nav.PathDetails {
		return m.handleDetailKey(msg)
	}
	return m.handleSearchKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.session.Search.Snapshot()
	current := m.store.Read()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.selected = clampIndex(m.selected-1, len(snap.Items))
	case key.Matches(msg, m.keys.Down):
		m.selected = clampIndex(m.selected+1, len(snap.Items))
	case key.Matches(msg, m.keys.Open):
		if m.selected < len(snap.Items) {
			m.history.Navigate(detailLocation(snap.Items[m.selected].ID))
		}

	case key.Matches(msg, m.keys.FirstPage, m.keys.PrevPage, m.keys.NextPage, m.keys.LastPage):
		if update, ok := pageTarget(msg, m.keys, current, snap.TotalItemsCount, snap.Loading()); ok {
			m.store.Update(update)
		}

	case key.Matches(msg, m.keys.ToggleSort):
		q, err := params.ParseQuery(current)
		if err != nil {
			m.flash = err.Error()
			return m, nil
		}
		m.store.Update(params.Mapping{params.KeySortValue: string(q.Sort.Toggle())})

	case key.Matches(msg, m.keys.PriceFilter):
		on := current.Get(params.KeyUsePriceFilter, "false") == "true"
		m.store.Update(params.WithFirstPage(params.Mapping{
			params.KeyUsePriceFilter: strconv.FormatBool(!on),
		}))

	case key.Matches(msg, m.keys.PriceRange):
		m.modal = newPriceDialog(current)
		return m, m.modal.Init()

	case key.Matches(msg, m.keys.Category):
		name, _ := current.Lookup(params.KeyCategory)
		m.history.Navigate(categoryLocation(nextCategory(m.categories, name)))

	case key.Matches(msg, m.keys.PerPage):
		q, err := params.ParseQuery(current)
		if err != nil {
			q.ItemsPerPage = params.DefaultItemsPerPage
		}
		m.store.Update(params.WithFirstPage(params.Mapping{
			params.KeyItemsPerPage: strconv.Itoa(nextPerPage(q.ItemsPerPage)),
		}))
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.session.Detail.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.related = clampIndex(m.related-1, len(snap.RelatedItems))
	case key.Matches(msg, m.keys.Down):
		m.related = clampIndex(m.related+1, len(snap.RelatedItems))
	case key.Matches(msg, m.keys.Open):
		if m.related < len(snap.RelatedItems) {
			m.history.Navigate(detailLocation(snap.RelatedItems[m.related].ID))
		}
	case key.Matches(msg, m.keys.QtyUp):
		m.quantity = cart.ClampQuantity(m.quantity + 1)
	case key.Matches(msg, m.keys.QtyDown):
		m.quantity = cart.ClampQuantity(m.quantity - 1)
	case key.Matches(msg, m.keys.AddCart):
		if snap.Item == nil || snap.Loading() {
			return m, nil
		}
		if err := m.cart.Add(*snap.Item, m.quantity); err != nil {
			m.flash = err.Error()
			return m, nil
		}
		m.flash = "Added " + strconv.Itoa(m.quantity) + " × " + snap.Item.Name + " to cart"
	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.description, cmd = m.description.Update(msg)
		return m, cmd
	}
	return m, nil
}

// pageTarget maps a paging key to the page update it requests. Paging is
// unavailable while a fetch is outstanding or when the target is disabled.
func pageTarget(msg tea.KeyMsg, keys keyMap, current params.Mapping, total int, loading bool) (params.Mapping, bool) {
	if loading {
		return nil, false
	}
	q, err := params.ParseQuery(current)
	if err != nil {
		return nil, false
	}
	c, err := paging.FromQuery(q, total)
	if err != nil {
		return nil, false
	}
	switch {
	case key.Matches(msg, keys.FirstPage) && c.FirstEnabled():
		return c.First(), true
	case key.Matches(msg, keys.PrevPage) && c.PrevEnabled():
		return c.Prev(), true
	case key.Matches(msg, keys.NextPage) && c.NextEnabled():
		return c.Next(), true
	case key.Matches(msg, keys.LastPage) && c.LastEnabled():
		return c.Last(), true
	}
	return nil, false
}

// detailLocation is the detail view for one item.
func detailLocation(id string) nav.Location {
	return nav.Location{Path: nav.PathDetails, Token: params.Encode(params.Mapping{params.KeyID: id})}
}

// categoryLocation starts a fresh listing for name, the way a header link
// does. An empty name is the unfiltered listing.
func categoryLocation(name string) nav.Location {
	if name == "" {
		return nav.Location{Path: nav.PathSearch}
	}
	return nav.Location{Path: nav.PathSearch, Token: params.Encode(params.Mapping{
		params.KeyCategory:    name,
		params.KeyDirectClick: "true",
	})}
}

// nextCategory cycles through categories and then back to no category.
func nextCategory(categories []string, current string) string {
	if len(categories) == 0 {
		return ""
	}
	for i, c := range categories {
		if c == current {
			if i+1 == len(categories) {
				return ""
			}
			return categories[i+1]
		}
	}
	return categories[0]
}

func nextPerPage(current int) int {
	for _, n := range perPageChoices {
		if n > current {
			return n
		}
	}
	return perPageChoices[0]
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
