package ui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recetasfaciles/recetas/internal/filter"
	"github.com/recetasfaciles/recetas/internal/recipe"
	"github.com/recetasfaciles/recetas/internal/state"
)

type fakeBrowser struct {
	mu        sync.Mutex
	calls     []string
	recipes   []recipe.Recipe
	current   *recipe.Recipe
	favorites []string
	selection filter.Selection
}

func (f *fakeBrowser) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeBrowser) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBrowser) Start(context.Context)           { f.record("start") }
func (f *fakeBrowser) LoadRandom(context.Context, int) { f.record("random") }
func (f *fakeBrowser) Search(_ context.Context, term string) {
	f.record("search:" + term)
}

func (f *fakeBrowser) ToggleCategory(_ context.Context, name string) bool {
	f.record("category:" + name)
	return f.selection.ToggleCategory(name)
}

func (f *fakeBrowser) ToggleTag(tag string) bool     { return f.selection.ToggleTag(tag) }
func (f *fakeBrowser) ClearFilters()                 { f.selection.Clear() }
func (f *fakeBrowser) Selection() *filter.Selection { return &f.selection }

func (f *fakeBrowser) OpenRecipe(_ context.Context, id string) {
	f.record("open:" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			r := f.recipes[i]
			f.current = &r
		}
	}
}

func (f *fakeBrowser) CloseRecipe() {
	f.mu.Lock()
	f.current = nil
	f.mu.Unlock()
}

func (f *fakeBrowser) OpenFavorites(context.Context) { f.record("favorites") }

func (f *fakeBrowser) ToggleFavorite(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, fav := range f.favorites {
		if fav == id {
			f.favorites = append(f.favorites[:i], f.favorites[i+1:]...)
			return false, nil
		}
	}
	f.favorites = append(f.favorites, id)
	return true, nil
}

func (f *fakeBrowser) IsFavorite(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fav := range f.favorites {
		if fav == id {
			return true
		}
	}
	return false
}

func (f *fakeBrowser) FavoriteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.favorites)
}

func (f *fakeBrowser) Snapshot() state.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := state.Snapshot{Recipes: append([]recipe.Recipe(nil), f.recipes...)}
	if f.current != nil {
		r := *f.current
		snap.Current = &r
	}
	return snap
}

func (f *fakeBrowser) Visible() []recipe.Recipe {
	return f.selection.Apply(f.recipes)
}

func (f *fakeBrowser) Favorites() []recipe.Recipe {
	var out []recipe.Recipe
	for _, r := range f.recipes {
		if f.IsFavorite(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeBrowser) AvailableTags() []string {
	return filter.AvailableTags(f.recipes)
}

func sampleRecipes(n int) []recipe.Recipe {
	out := make([]recipe.Recipe, n)
	for i := range out {
		out[i] = recipe.Recipe{
			ID:          string(rune('a' + i)),
			Title:       "Receta " + string(rune('A'+i)),
			Category:    "Cena",
			Area:        "Spanish",
			Servings:    4,
			Difficulty:  recipe.DifficultyEasy,
			Tags:        []string{"Casero"},
			Ingredients: []string{"200 g arroz", "sal"},
			Nutrition:   recipe.Nutrition{Calories: 400},
		}
	}
	out[0].Tags = []string{"Rápido"}
	return out
}

func newTestModel(t *testing.T, b *fakeBrowser) Model {
	t.Helper()
	m := New(Options{
		Context:   context.Background(),
		Browser:   b,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	next, _ = m.Update(snapshotMsg(b.Snapshot()))
	return next.(Model)
}

// drain executes cmd and feeds every resulting message back into the
// model, expanding batches.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("command queue did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if _, ok := msg.(tickMsg); ok {
			continue
		}
		next, more := m.Update(msg)
		m = next.(Model)
		queue = append(queue, more)
	}
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitStarts(t *testing.T) {
	b := &fakeBrowser{recipes: sampleRecipes(3)}
	m := New(Options{Browser: b, PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	m = drain(t, m, m.Init())
	if calls := b.Calls(); len(calls) != 1 || calls[0] != "start" {
		t.Fatalf("calls = %v, want [start]", calls)
	}
	if len(m.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.rows))
	}
}

func TestModelPagesSixAtATime(t *testing.T) {
	b := &fakeBrowser{recipes: sampleRecipes(14)}
	m := newTestModel(t, b)

	page, more := m.page()
	if len(page) != PageSize || !more {
		t.Fatalf("page = %d more=%v, want %d more=true", len(page), more, PageSize)
	}
	if !strings.Contains(m.View(), "Ver más recetas (8 más)") {
		t.Fatal("list does not offer more recipes")
	}

	m = press(t, m, runeKey("m"), runeKey("m"))
	page, more = m.page()
	if len(page) != 14 || more {
		t.Fatalf("page = %d more=%v after two reveals, want 14 more=false", len(page), more)
	}

	m = press(t, m, runeKey("m"))
	if m.limits[ViewRecipes] != 3*PageSize {
		t.Fatalf("limit grew past the list: %d", m.limits[ViewRecipes])
	}
}

func TestModelMoveSelection(t *testing.T) {
	b := &fakeBrowser{recipes: sampleRecipes(3)}
	m := newTestModel(t, b)

	m = press(t, m, runeKey("j"), runeKey("j"), runeKey("j"))
	if m.selectedRow != 2 {
		t.Fatalf("selectedRow = %d, want 2", m.selectedRow)
	}
	m = press(t, m, runeKey("g"))
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow = %d after g, want 0", m.selectedRow)
	}
}

func TestModelSearchSubmitsOnEnter(t *testing.T) {
	b := &fakeBrowser{recipes: sampleRecipes(2)}
	m := newTestModel(t, b)

	m = press(t, m, runeKey("/"))
	if !m.searching {
		t.Fatal("search box not focused")
	}
	m = press(t, m, runeKey("p"), runeKey("a"), runeKey("n"))
	if len(b.Calls()) != 0 {
		t.Fatalf("typing triggered calls: %v", b.Calls())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching {
		t.Fatal("search box still focused after enter")
	}
	if calls := b.Calls(); len(calls) != 1 || calls[0] != "search:pan" {
		t.Fatalf("calls = %v, want [search:pan]", calls)
	}
}

func TestModelSearchEscapeCancels(t *testing.T) {
	b := &fakeBrowser{recipes: sampleRecipes(2)}
	m := newTestModel(t, b)

	m = press(t, m, runeKey("/"), runeKey("x"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching || len(b.Calls()) != 0 {
		t.Fatalf("searching=%v calls=%v, want cancelled", m.searching, b.Calls())
	}
}

func TestModelCategoryKeys(t *testing.T) {
	b := &fakeBrowser{recipes: sampleRecipes(2)}
	m := newTestModel(t, b)

	m = press(t, m, runeKey("3"))
	want := "category:" + recipe.Categories()[2].Name
	if calls := b.Calls(); len(calls) != 1 || calls[0] != want {
		t.Fatalf("calls = %v, want [%s]", calls, want)
	}
	if !b.selection.HasCategory(recipe.Categories()[2].Name) {
		t.Fatal("category not selected")
	}
}

func TestModelTagPicker(t *testing.T) {
	b := &fakeBrowser{recipes: sampleRecipes(3)}
	m := newTestModel(t, b)

	m = press(t, m, runeKey("f"))
	if !m.showTags {
		t.Fatal("tag picker not open")
	}
	// Tags keep first appearance order: Rápido, Casero.
	m = press(t, m, runeKey(" "))
	if !b.selection.HasTag("Rápido") {
		t.Fatalf("tags = %v, want Rápido selected", b.selection.Tags())
	}
	if len(m.rows) != 1 || m.rows[0].ID != "a" {
		t.Fatalf("rows = %v, want only recipe a", m.rows)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showTags {
		t.Fatal("tag picker still open")
	}
	m = press(t, m, runeKey("x"))
	if len(m.rows) != 3 {
		t.Fatalf("rows = %d after clearing filters, want 3", len(m.rows))
	}
}

func TestModelToggleFavorite(t *testing.T) {
	b := &fakeBrowser{recipes: sampleRecipes(3)}
	m := newTestModel(t, b)

	m = press(t, m, runeKey("j"), runeKey("s"))
	if !b.IsFavorite("b") {
		t.Fatal("recipe b not favorited")
	}
	if !strings.Contains(m.View(), "1 favorita") {
		t.Fatal("header does not count the favorite")
	}

	m = press(t, m, runeKey("v"))
	if m.currentView != ViewFavorites {
		t.Fatalf("view = %v, want favorites", m.currentView)
	}
	if calls := b.Calls(); calls[len(calls)-1] != "favorites" {
		t.Fatalf("calls = %v, want favorites last", calls)
	}
	if len(m.rows) != 1 || m.rows[0].ID != "b" {
		t.Fatalf("favorite rows = %v", m.rows)
	}
}

func TestModelDetailServings(t *testing.T) {
	b := &fakeBrowser{recipes: sampleRecipes(2)}
	m := newTestModel(t, b)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.currentView != ViewDetail {
		t.Fatalf("view = %v, want detail", m.currentView)
	}
	if m.servings != 4 {
		t.Fatalf("servings = %d, want 4", m.servings)
	}
	if !strings.Contains(m.detailContent(80), "200 g arroz") {
		t.Fatal("detail missing ingredient")
	}

	m = press(t, m, runeKey("+"), runeKey("+"), runeKey("+"), runeKey("+"))
	if m.servings != 8 {
		t.Fatalf("servings = %d, want 8", m.servings)
	}
	content := m.detailContent(80)
	if !strings.Contains(content, "400 g arroz") || !strings.Contains(content, "8 porciones") {
		t.Fatalf("detail not scaled:\n%s", content)
	}
	if !strings.Contains(content, "800") {
		t.Fatal("calories not scaled")
	}

	m = press(t, m, runeKey("-"), runeKey("0"))
	if m.servings != 4 {
		t.Fatalf("servings = %d after reset, want 4", m.servings)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentView != ViewRecipes {
		t.Fatalf("view = %v after esc, want recipes", m.currentView)
	}
	if m.snapshot.Current != nil {
		t.Fatal("current recipe not cleared")
	}
}

func TestModelDetailNotFound(t *testing.T) {
	b := &fakeBrowser{}
	m := newTestModel(t, b)
	m.currentView = ViewDetail
	if !strings.Contains(m.detailContent(80), "Receta no encontrada") {
		t.Fatal("missing not-found message")
	}
}

func TestModelLoadingSchedulesTick(t *testing.T) {
	b := &fakeBrowser{}
	m := newTestModel(t, b)

	next, cmd := m.applySnapshot(state.Snapshot{Loading: true})
	m = next.(Model)
	if cmd == nil || !m.ticking {
		t.Fatal("loading snapshot did not schedule a refresh")
	}
	if _, cmd = m.applySnapshot(state.Snapshot{Loading: true}); cmd != nil {
		t.Fatal("second loading snapshot scheduled another tick")
	}
	if !strings.Contains(m.statusLine(), "Cargando") {
		t.Fatalf("statusLine = %q", m.statusLine())
	}
}

func TestModelCycleThemeSavesPrefs(t *testing.T) {
	b := &fakeBrowser{}
	m := newTestModel(t, b)

	m = press(t, m, runeKey("T"))
	if m.theme.Name != "Noche" {
		t.Fatalf("theme = %q, want Noche", m.theme.Name)
	}
}

func TestModelHelpOverlay(t *testing.T) {
	b := &fakeBrowser{}
	m := newTestModel(t, b)

	m = press(t, m, runeKey("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Atajos de teclado") {
		t.Fatal("help overlay not shown")
	}
	m = press(t, m, runeKey("j"))
	if m.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestModelQuit(t *testing.T) {
	b := &fakeBrowser{}
	m := newTestModel(t, b)
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}
