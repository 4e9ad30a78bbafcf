package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/recetasfaciles/recetas/internal/filter"
	"github.com/recetasfaciles/recetas/internal/prefs"
	"github.com/recetasfaciles/recetas/internal/recipe"
	"github.com/recetasfaciles/recetas/internal/search"
	"github.com/recetasfaciles/recetas/internal/state"
)

// Browser is the browsing session the UI drives. Methods that take a
// context block until their fetch settles; the UI only calls them from
// commands.
type Browser interface {
	Start(ctx context.Context)
	LoadRandom(ctx context.Context, count int)
	Search(ctx context.Context, term string)
	ToggleCategory(ctx context.Context, name string) bool
	ToggleTag(tag string) bool
	ClearFilters()
	Selection() *filter.Selection
	OpenRecipe(ctx context.Context, id string)
	CloseRecipe()
	OpenFavorites(ctx context.Context)
	ToggleFavorite(id string) (bool, error)
	IsFavorite(id string) bool
	FavoriteCount() int
	Snapshot() state.Snapshot
	Visible() []recipe.Recipe
	Favorites() []recipe.Recipe
	AvailableTags() []string
}

// View represents the current active view.
type View int

const (
	ViewRecipes View = iota
	ViewFavorites
	ViewDetail
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Browser    Browser
	Log        *zap.Logger
	ThemeName  string
	Compact    bool
	PrefsPath  string
	AuthorName string
	AuthorURL  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	browser    Browser
	log        *zap.Logger
	keys       keyMap
	prefsPath  string
	authorName string
	authorURL  string

	// UI state
	theme       Theme
	compact     bool
	currentView View
	returnView  View // list view to go back to from the detail view
	width       int
	height      int
	ready       bool

	// Data state
	snapshot state.Snapshot
	rows     []recipe.Recipe
	ticking  bool
	frame    int
	notice   string

	// List state
	selectedRow int
	limits      map[View]int

	// Search input
	searching   bool
	searchInput textinput.Model

	// Tag picker overlay
	showTags  bool
	tagCursor int

	// Detail state
	detailViewport viewport.Model
	detailID       string
	servings       int

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ti := textinput.New()
	ti.Placeholder = "¿Qué te apetece cocinar hoy? 🤔"
	ti.CharLimit = search.MaxQueryLength
	ti.Prompt = "/ "

	return Model{
		ctx:         ctx,
		browser:     opts.Browser,
		log:         log.Named("ui"),
		keys:        DefaultKeyMap(),
		prefsPath:   prefsPath,
		authorName:  opts.AuthorName,
		authorURL:   opts.AuthorURL,
		theme:       GetTheme(themeName),
		compact:     opts.Compact,
		currentView: ViewRecipes,
		limits:      map[View]int{ViewRecipes: PageSize, ViewFavorites: PageSize},
		searchInput: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.browser == nil {
		return nil
	}
	return m.run(func(ctx context.Context, b Browser) { b.Start(ctx) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
		}
		m.ready = true
		m.updateDetailViewport()
		return m, nil

	case snapshotMsg:
		return m.applySnapshot(state.Snapshot(msg))

	case tickMsg:
		m.ticking = false
		m.frame++
		return m, fetchSnapshotCmd(m.browser)

	case favoriteMsg:
		if msg.err != nil {
			m.notice = "No se pudo guardar la favorita"
		} else {
			m.notice = ""
		}
		m.refreshRows()
		m.updateDetailViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showTags {
		return m.renderTagPicker()
	}
	return m.renderMain()
}

// applySnapshot stores a new snapshot and schedules another refresh while
// a fetch is still in flight.
func (m Model) applySnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	if snap.Current != nil && snap.Current.ID != m.detailID && m.currentView == ViewDetail {
		m.detailID = snap.Current.ID
		m.servings = snap.Current.Servings
		m.detailViewport.GotoTop()
	}
	m.refreshRows()
	m.updateDetailViewport()

	if snap.Loading && !m.ticking {
		m.ticking = true
		return m, tickCmd(LoadingTick)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchInput(msg)
	}
	if m.showTags {
		return m.handleTagPickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.ToggleCompact):
		m.compact = !m.compact
		m.savePrefs()
		return m, nil
	}

	if m.currentView == ViewDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey processes keys for the recipe and favorites lists.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page, _ := m.page()
	count := len(page)

	switch {
	case key.Matches(msg, m.keys.ViewRecipes):
		return m.switchView(ViewRecipes)

	case key.Matches(msg, m.keys.ViewFavorites):
		return m.switchView(ViewFavorites)

	case key.Matches(msg, m.keys.Tab):
		if m.currentView == ViewRecipes {
			return m.switchView(ViewFavorites)
		}
		return m.switchView(ViewRecipes)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.snapshot.SearchTerm)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Random):
		m.selectedRow = 0
		return m, m.run(func(ctx context.Context, b Browser) { b.LoadRandom(ctx, RandomBatch) })

	case key.Matches(msg, m.keys.Tags):
		if len(m.browser.AvailableTags()) == 0 {
			return m, nil
		}
		m.showTags = true
		m.tagCursor = 0
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.browser.ClearFilters()
		m.refreshRows()
		return m, nil

	case key.Matches(msg, m.keys.ShowMore):
		if _, more := m.page(); more {
			m.limits[m.currentView] += PageSize
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.selectedRow = clamp(m.selectedRow-1, 0, count-1)
	case key.Matches(msg, m.keys.Down):
		m.selectedRow = clamp(m.selectedRow+1, 0, count-1)
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = clamp(count-1, 0, count-1)

	case key.Matches(msg, m.keys.ToggleFavorite):
		if r := m.selected(); r != nil {
			return m, m.toggleFavoriteCmd(r.ID)
		}

	case key.Matches(msg, m.keys.Open):
		if r := m.selected(); r != nil {
			return m.openDetail(r.ID)
		}
	}

	for i, binding := range m.keys.Categories {
		if !key.Matches(msg, binding) {
			continue
		}
		cats := recipe.Categories()
		if i >= len(cats) || m.currentView != ViewRecipes {
			return m, nil
		}
		name := cats[i].Name
		m.selectedRow = 0
		return m, m.run(func(ctx context.Context, b Browser) { b.ToggleCategory(ctx, name) })
	}

	return m, nil
}

// handleSearchInput handles keyboard input while the search box is focused.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		term := m.searchInput.Value()
		m.searching = false
		m.searchInput.Blur()
		m.selectedRow = 0
		m.currentView = ViewRecipes
		return m, m.run(func(ctx context.Context, b Browser) { b.Search(ctx, term) })

	case msg.Type == tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleTagPickerKey handles keys while the tag picker is open.
func (m Model) handleTagPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := m.browser.AvailableTags()
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Tags):
		m.showTags = false
	case key.Matches(msg, m.keys.Up):
		m.tagCursor = clamp(m.tagCursor-1, 0, len(tags)-1)
	case key.Matches(msg, m.keys.Down):
		m.tagCursor = clamp(m.tagCursor+1, 0, len(tags)-1)
	case key.Matches(msg, m.keys.ToggleTag):
		if m.tagCursor < len(tags) {
			m.browser.ToggleTag(tags[m.tagCursor])
			m.selectedRow = 0
			m.refreshRows()
		}
	case key.Matches(msg, m.keys.ClearFilters):
		m.browser.ClearFilters()
		m.refreshRows()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// handleDetailKey handles keys in the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.browser.CloseRecipe()
		m.currentView = m.returnView
		m.detailID = ""
		return m, fetchSnapshotCmd(m.browser)

	case key.Matches(msg, m.keys.ToggleFavorite):
		if cur := m.snapshot.Current; cur != nil {
			return m, m.toggleFavoriteCmd(cur.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.MoreServings):
		m.servings++
	case key.Matches(msg, m.keys.LessServings):
		m.servings = max(1, m.servings-1)
	case key.Matches(msg, m.keys.ResetServings):
		if cur := m.snapshot.Current; cur != nil {
			m.servings = cur.Servings
		}

	case key.Matches(msg, m.keys.Up):
		m.detailViewport.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.detailViewport.ScrollDown(1)
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
		return m, nil

	default:
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd
	}

	m.updateDetailViewport()
	return m, nil
}

// switchView moves between the two list views.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if m.currentView == v {
		return m, nil
	}
	m.currentView = v
	m.selectedRow = 0
	m.refreshRows()
	if v == ViewFavorites {
		return m, m.run(func(ctx context.Context, b Browser) { b.OpenFavorites(ctx) })
	}
	return m, nil
}

// openDetail switches to the detail view and loads id.
func (m Model) openDetail(id string) (tea.Model, tea.Cmd) {
	m.returnView = m.currentView
	m.currentView = ViewDetail
	m.detailID = ""
	m.servings = 0
	m.browser.CloseRecipe()
	m.snapshot.Current = nil
	m.updateDetailViewport()
	return m, m.run(func(ctx context.Context, b Browser) { b.OpenRecipe(ctx, id) })
}

// refreshRows recomputes the rows of the current list view.
func (m *Model) refreshRows() {
	if m.browser == nil {
		return
	}
	switch m.currentView {
	case ViewFavorites:
		m.rows = m.browser.Favorites()
	case ViewRecipes:
		m.rows = m.browser.Visible()
	default:
		return
	}
	page, _ := m.page()
	m.selectedRow = clamp(m.selectedRow, 0, len(page)-1)
}

// page returns the rows shown under the current limit and whether more
// rows are hidden.
func (m Model) page() ([]recipe.Recipe, bool) {
	limit := m.limits[m.currentView]
	if limit <= 0 {
		limit = PageSize
	}
	if len(m.rows) <= limit {
		return m.rows, false
	}
	return m.rows[:limit], true
}

func (m Model) selected() *recipe.Recipe {
	page, _ := m.page()
	if m.selectedRow < 0 || m.selectedRow >= len(page) {
		return nil
	}
	r := page[m.selectedRow]
	return &r
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Compact: m.compact}); err != nil {
		m.log.Warn("prefs not saved", zap.Error(err))
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type favoriteMsg struct {
	id  string
	on  bool
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(b Browser) tea.Cmd {
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(b.Snapshot())
	}
}

// run executes action in a command and reports the resulting snapshot. A
// snapshot is also taken right away so the loading state shows.
func (m Model) run(action func(ctx context.Context, b Browser)) tea.Cmd {
	b, ctx := m.browser, m.ctx
	return tea.Batch(
		func() tea.Msg {
			action(ctx, b)
			return snapshotMsg(b.Snapshot())
		},
		fetchSnapshotCmd(b),
	)
}

func (m Model) toggleFavoriteCmd(id string) tea.Cmd {
	b := m.browser
	return func() tea.Msg {
		on, err := b.ToggleFavorite(id)
		return favoriteMsg{id: id, on: on, err: err}
	}
}

// Run starts the Bubble Tea program. It returns nil when the program ends
// because opts.Context was cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// statusLine summarizes the list for the header.
func (m Model) statusLine() string {
	if m.snapshot.Loading {
		return "Cargando" + strings.Repeat(".", m.frame%4)
	}
	switch m.currentView {
	case ViewFavorites:
		n := m.browser.FavoriteCount()
		return plural(n, "receta guardada", "recetas guardadas") + " 🎉"
	default:
		return plural(len(m.rows), "receta encontrada", "recetas encontradas") + " 🎉"
	}
}
