package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/nav"
	"github.com/five82/storefront/internal/params"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/viewsync"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Fetcher    catalog.Fetcher
	History    *nav.History
	Cart       *cart.Cart
	Categories []string
	Order      viewsync.ResolutionOrder
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx        context.Context
	history    *nav.History
	store      *params.Store
	session    *viewsync.Session
	cart       *cart.Cart
	categories []string
	locCh      <-chan struct{}
	unsub      func()

	// Configuration
	prefsPath string
	keys      keyMap
	theme     Theme

	// Widgets
	spinner     spinner.Model
	help        help.Model
	description viewport.Model

	// Layout
	width  int
	height int
	ready  bool

	// View state
	selected   int
	related    int
	quantity   int
	showHelp   bool
	modal      Modal
	flash      string
	lastSearch string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	history := opts.History
	if history == nil {
		history = nav.NewHistory(nav.Location{Path: nav.PathSearch})
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	c := opts.Cart
	if c == nil {
		c = &cart.Cart{}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	locCh, unsub := history.Subscribe()

	m := Model{
		ctx:         ctx,
		history:     history,
		store:       params.NewStore(history),
		session:     viewsync.NewSession(ctx, opts.Fetcher, opts.Order),
		cart:        c,
		categories:  opts.Categories,
		locCh:       locCh,
		unsub:       unsub,
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		spinner:     sp,
		help:        help.New(),
		description: viewport.New(0, 0),
		quantity:    cart.MinQuantity,
	}
	if loc := history.Location(); loc.Path != nav.PathDetails {
		m.lastSearch = loc.String()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.syncCmd(m.history.Location()),
		waitForLocation(m.locCh),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.resizeDescription()
		return m, nil

	case locationMsg:
		return m.handleLocation()

	case searchResponseMsg:
		m.session.Search.Apply(viewsync.SearchResponse(msg))
		snap := m.session.Search.Snapshot()
		m.selected = clampIndex(m.selected, len(snap.Items))
		return m, nil

	case detailResponseMsg:
		m.session.Detail.Apply(viewsync.DetailResponse(msg))
		snap := m.session.Detail.Snapshot()
		m.related = clampIndex(m.related, len(snap.RelatedItems))
		m.updateDescription()
		return m, nil

	case priceRangeMsg:
		m.store.Update(params.WithFirstPage(params.Mapping{
			params.KeyMinPrice: msg.min,
			params.KeyMaxPrice: msg.max,
		}))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
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
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// LastSearch returns the most recent listing location, suitable for
// restoring the view on the next start.
func (m Model) LastSearch() string {
	return m.lastSearch
}

// ThemeName returns the active theme.
func (m Model) ThemeName() string {
	return m.theme.Name
}

// handleLocation brings the controllers in line with the history after a move.
func (m Model) handleLocation() (tea.Model, tea.Cmd) {
	loc := m.history.Location()
	if loc.Path != m.session.View() {
		m.selected = 0
		m.related = 0
		m.quantity = cart.MinQuantity
		m.description.GotoTop()
	}
	if loc.Path != nav.PathDetails {
		m.lastSearch = loc.String()
	}
	m.flash = ""
	return m, tea.Batch(m.syncCmd(loc), waitForLocation(m.locCh))
}

// syncCmd routes loc through the session and turns the issued requests into
// commands that fetch off the event loop.
func (m Model) syncCmd(loc nav.Location) tea.Cmd {
	pending := m.session.Sync(loc)
	var cmds []tea.Cmd
	if pending.Search != nil {
		cmds = append(cmds, searchCmd(m.ctx, m.session.Search, *pending.Search))
	}
	if pending.Detail != nil {
		cmds = append(cmds, detailCmd(m.ctx, m.session.Detail, *pending.Detail))
	}
	return tea.Batch(cmds...)
}

func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.session.View() == nav.PathDetails {
		b.WriteString(m.renderDetail())
	} else {
		b.WriteString(m.renderSearch())
	}
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

// Messages

type locationMsg struct{}

type searchResponseMsg viewsync.SearchResponse

type detailResponseMsg viewsync.DetailResponse

type priceRangeMsg struct {
	min string
	max string
}

// Commands

// waitForLocation blocks on the history subscription. A closed channel ends
// the loop.
func waitForLocation(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return locationMsg{}
	}
}

func searchCmd(ctx context.Context, c *viewsync.SearchController, req viewsync.SearchRequest) tea.Cmd {
	return func() tea.Msg {
		return searchResponseMsg(c.Fetch(ctx, req))
	}
}

func detailCmd(ctx context.Context, c *viewsync.DetailController, req viewsync.DetailRequest) tea.Cmd {
	return func() tea.Msg {
		return detailResponseMsg(c.Fetch(ctx, req))
	}
}

// Run starts the Bubble Tea program and returns the final model so the
// caller can persist what it needs.
func Run(opts Options) (Model, error) {
	m := New(opts)
	defer m.unsub()
	defer m.session.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		return fm, err
	}
	return m, err
}
