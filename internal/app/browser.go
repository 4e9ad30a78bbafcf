package app

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/recetasfaciles/recetas/internal/favorites"
	"github.com/recetasfaciles/recetas/internal/fetch"
	"github.com/recetasfaciles/recetas/internal/filter"
	"github.com/recetasfaciles/recetas/internal/recipe"
	"github.com/recetasfaciles/recetas/internal/search"
	"github.com/recetasfaciles/recetas/internal/state"
)

const (
	// InitialRandomCount is the size of the random batch shown on start and
	// whenever browsing falls back to random recipes.
	InitialRandomCount = 12
	// FavoritesRandomCount is loaded when the favorites view opens with no
	// recipes to pick favorites from.
	FavoritesRandomCount = 20
)

// Fetcher is the subset of *fetch.Client the browser drives.
type Fetcher interface {
	Search(ctx context.Context, query string) []recipe.Recipe
	ByCategory(ctx context.Context, externalName string) []recipe.Recipe
	ByID(ctx context.Context, id string) *recipe.Recipe
	Random(ctx context.Context, count int) []recipe.Recipe
}

var _ Fetcher = (*fetch.Client)(nil)

// Browser holds the browsing session: the shared store, the filter
// selection and favorites. Its methods block until the fetch they start
// settles and are safe to call from several goroutines.
type Browser struct {
	fetch     Fetcher
	store     *state.Store
	favorites *favorites.Store
	selection *filter.Selection
	throttle  *search.Throttle
	log       *zap.Logger
}

// NewBrowser wires a Browser. A nil throttle uses the default window and a
// nil logger discards.
func NewBrowser(f Fetcher, store *state.Store, favs *favorites.Store, throttle *search.Throttle, log *zap.Logger) *Browser {
	if throttle == nil {
		throttle = search.NewThrottle(search.DefaultThrottleWindow)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Browser{
		fetch:     f,
		store:     store,
		favorites: favs,
		selection: &filter.Selection{},
		throttle:  throttle,
		log:       log.Named("browser"),
	}
}

// Start loads the first random batch unless the store already has recipes
// or holds a search result.
func (b *Browser) Start(ctx context.Context) {
	snap := b.store.Snapshot()
	if len(snap.Recipes) > 0 || snap.HasSearched {
		return
	}
	b.LoadRandom(ctx, InitialRandomCount)
}

// LoadRandom replaces the collection with count random recipes.
func (b *Browser) LoadRandom(ctx context.Context, count int) {
	b.collect(ctx, state.KindRandom, func(ctx context.Context) []recipe.Recipe {
		return b.fetch.Random(ctx, count)
	})
}

// Search records term as the search text. A non-blank term is searched
// unless it repeats the previous search within the throttle window; a blank
// term falls back to random recipes.
func (b *Browser) Search(ctx context.Context, term string) {
	b.store.SetSearchTerm(term)
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		b.LoadRandom(ctx, InitialRandomCount)
		return
	}
	if !b.throttle.Allow(trimmed) {
		b.log.Debug("repeated search suppressed", zap.String("query", trimmed))
		return
	}
	b.collect(ctx, state.KindSearch, func(ctx context.Context) []recipe.Recipe {
		return b.fetch.Search(ctx, trimmed)
	})
}

// ToggleCategory flips the category selection. Selecting a known category
// loads its recipes; deselecting the only selected category goes back to
// random recipes. It reports whether name is selected afterwards.
func (b *Browser) ToggleCategory(ctx context.Context, name string) bool {
	wasOnly := b.selection.HasCategory(name) && len(b.selection.Categories()) == 1
	selected := b.selection.ToggleCategory(name)

	cat, known := recipe.CategoryByName(name)
	switch {
	case selected && known:
		b.collect(ctx, state.KindCategory, func(ctx context.Context) []recipe.Recipe {
			return b.fetch.ByCategory(ctx, cat.External)
		})
	case !selected && wasOnly:
		b.LoadRandom(ctx, InitialRandomCount)
	case selected:
		b.log.Warn("unknown category selected", zap.String("category", name))
	}
	return selected
}

// ToggleTag flips the tag selection. It never fetches.
func (b *Browser) ToggleTag(tag string) bool {
	return b.selection.ToggleTag(tag)
}

// ClearFilters drops every selected category and tag.
func (b *Browser) ClearFilters() {
	b.selection.Clear()
}

// Selection exposes the filter state for rendering.
func (b *Browser) Selection() *filter.Selection {
	return b.selection
}

// OpenRecipe loads id into the current recipe slot.
func (b *Browser) OpenRecipe(ctx context.Context, id string) {
	t := b.store.Begin(state.KindByID)
	started := time.Now()
	r := b.fetch.ByID(ctx, id)
	if err := ctx.Err(); err != nil {
		b.store.Reject(t, err)
		return
	}
	if !b.store.FulfillCurrent(t, r) {
		b.log.Debug("stale recipe lookup discarded", zap.String("id", id))
		return
	}
	b.log.Debug("recipe opened",
		zap.String("id", id),
		zap.Bool("found", r != nil),
		zap.Duration("elapsed", time.Since(started)),
	)
}

// CloseRecipe leaves the detail view.
func (b *Browser) CloseRecipe() {
	b.store.ClearCurrent()
}

// OpenFavorites makes sure there are recipes to pick favorites from.
func (b *Browser) OpenFavorites(ctx context.Context) {
	if len(b.store.Snapshot().Recipes) > 0 {
		return
	}
	b.LoadRandom(ctx, FavoritesRandomCount)
}

// ToggleFavorite flips id in the favorite set and reports whether it is a
// favorite afterwards.
func (b *Browser) ToggleFavorite(id string) (bool, error) {
	return b.favorites.Toggle(id)
}

func (b *Browser) IsFavorite(id string) bool {
	return b.favorites.IsFavorite(id)
}

func (b *Browser) FavoriteCount() int {
	return b.favorites.Count()
}

// Snapshot returns the current store snapshot.
func (b *Browser) Snapshot() state.Snapshot {
	return b.store.Snapshot()
}

// Visible is the collection projected through the filter selection.
func (b *Browser) Visible() []recipe.Recipe {
	return b.selection.Apply(b.store.Snapshot().Recipes)
}

// Favorites lists the loaded recipes that are favorites.
func (b *Browser) Favorites() []recipe.Recipe {
	return b.favorites.Filter(b.store.Snapshot().Recipes)
}

// AvailableTags lists the tags of the loaded collection.
func (b *Browser) AvailableTags() []string {
	return filter.AvailableTags(b.store.Snapshot().Recipes)
}

// collect runs one collection fetch through the store protocol. The fetch
// client never fails, so the only rejection is the context ending first.
func (b *Browser) collect(ctx context.Context, kind state.Kind, op func(context.Context) []recipe.Recipe) {
	t := b.store.Begin(kind)
	if kind != state.KindSearch {
		// The search result is being replaced, so repeating it must run again.
		b.throttle.Reset()
	}
	started := time.Now()
	recipes := op(ctx)
	if err := ctx.Err(); err != nil {
		b.store.Reject(t, err)
		b.log.Debug("fetch abandoned", zap.Stringer("kind", kind), zap.Error(err))
		return
	}
	if !b.store.Fulfill(t, recipes) {
		b.log.Debug("stale fetch discarded", zap.Stringer("kind", kind), zap.Int("count", len(recipes)))
		return
	}
	b.log.Debug("fetch settled",
		zap.Stringer("kind", kind),
		zap.Int("count", len(recipes)),
		zap.Duration("elapsed", time.Since(started)),
	)
}
