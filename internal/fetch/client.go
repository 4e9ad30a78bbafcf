// Package fetch exposes the recipe operations the UI calls. Every operation
// swallows source failures and returns an empty result; failures are only
// visible in the log.
package fetch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/recetasfaciles/recetas/internal/mealdb"
	"github.com/recetasfaciles/recetas/internal/recipe"
	"github.com/recetasfaciles/recetas/internal/search"
)

const (
	// MaxCategoryDetails caps how many listed meals are expanded per category.
	MaxCategoryDetails = 12
	// DefaultRandomCount is used when Random is asked for a non-positive count.
	DefaultRandomCount = 12
)

// Client applies the transformation to results from a mealdb.Source.
type Client struct {
	source      mealdb.Source
	transformer *recipe.Transformer
	guard       *search.Guard
	log         *zap.Logger
}

// CategoryResult reports a category fan-out, including the detail lookups
// that were dropped.
type CategoryResult struct {
	Recipes  []recipe.Recipe
	Listed   int // entries returned by the listing
	Expanded int // entries a detail lookup was issued for
	Dropped  int // detail lookups that failed or came back empty
}

// New builds a Client. A nil transformer is time-seeded, a nil guard uses
// search.NewGuard and a nil logger discards.
func New(source mealdb.Source, transformer *recipe.Transformer, guard *search.Guard, log *zap.Logger) *Client {
	if transformer == nil {
		transformer = recipe.NewTimeSeededTransformer()
	}
	if guard == nil {
		guard = search.NewGuard()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		source:      source,
		transformer: transformer,
		guard:       guard,
		log:         log.Named("fetch"),
	}
}

// Search looks recipes up by name. Queries the guard rejects, and blank
// queries, return nil without contacting the source.
func (c *Client) Search(ctx context.Context, query string) []recipe.Recipe {
	log := c.opLogger("search")
	cleaned, err := c.guard.Clean(query)
	if err != nil {
		log.Warn("search query blocked", zap.String("query", query), zap.Error(err))
		return nil
	}
	if cleaned == "" {
		log.Debug("blank search query skipped")
		return nil
	}

	meals, err := c.source.Search(ctx, cleaned)
	if err != nil {
		log.Error("search failed", zap.String("query", cleaned), zap.Error(err))
		return nil
	}
	log.Debug("search completed", zap.String("query", cleaned), zap.Int("results", len(meals)))
	return c.transformer.TransformAll(meals)
}

// ByCategory lists recipes for an external category name.
func (c *Client) ByCategory(ctx context.Context, externalName string) []recipe.Recipe {
	return c.ByCategoryDetailed(ctx, externalName).Recipes
}

// ByCategoryDetailed lists the category, then looks up at most
// MaxCategoryDetails entries concurrently. Lookups that fail or return
// nothing are dropped; the rest are transformed in listing order.
func (c *Client) ByCategoryDetailed(ctx context.Context, externalName string) CategoryResult {
	log := c.opLogger("by_category").With(zap.String("category", externalName))

	summaries, err := c.source.FilterByCategory(ctx, externalName)
	if err != nil {
		log.Error("category listing failed", zap.Error(err))
		return CategoryResult{}
	}
	result := CategoryResult{Listed: len(summaries)}
	if len(summaries) > MaxCategoryDetails {
		summaries = summaries[:MaxCategoryDetails]
	}
	result.Expanded = len(summaries)

	details := make([]*mealdb.Meal, len(summaries))
	c.fanOut(len(summaries), func(i int) error {
		meal, err := c.source.Lookup(ctx, summaries[i].ID)
		if err != nil {
			return err
		}
		details[i] = meal
		return nil
	}, func(i int, err error) {
		log.Warn("category detail lookup failed", zap.String("id", summaries[i].ID), zap.Error(err))
	})

	meals := collect(details)
	result.Dropped = result.Expanded - len(meals)
	result.Recipes = c.transformer.TransformAll(meals)
	if result.Dropped > 0 {
		log.Warn("category details dropped", zap.Int("dropped", result.Dropped), zap.Int("expanded", result.Expanded))
	}
	log.Debug("category completed", zap.Int("listed", result.Listed), zap.Int("recipes", len(result.Recipes)))
	return result
}

// ByID looks one recipe up. It returns nil when absent or on failure.
func (c *Client) ByID(ctx context.Context, id string) *recipe.Recipe {
	log := c.opLogger("by_id").With(zap.String("id", id))
	meal, err := c.source.Lookup(ctx, id)
	if err != nil {
		log.Error("lookup failed", zap.Error(err))
		return nil
	}
	if meal == nil {
		log.Debug("recipe not found")
		return nil
	}
	r := c.transformer.Transform(*meal)
	return &r
}

// Random issues count independent random requests concurrently. Responses
// are not deduplicated here; failed or empty responses are dropped.
func (c *Client) Random(ctx context.Context, count int) []recipe.Recipe {
	if count <= 0 {
		count = DefaultRandomCount
	}
	log := c.opLogger("random").With(zap.Int("count", count))

	results := make([]*mealdb.Meal, count)
	c.fanOut(count, func(i int) error {
		meal, err := c.source.Random(ctx)
		if err != nil {
			return err
		}
		results[i] = meal
		return nil
	}, func(_ int, err error) {
		log.Warn("random request failed", zap.Error(err))
	})

	meals := collect(results)
	if dropped := count - len(meals); dropped > 0 {
		log.Warn("random requests dropped", zap.Int("dropped", dropped))
	}
	return c.transformer.TransformAll(meals)
}

// Categories lists the source's categories, or nil on failure.
func (c *Client) Categories(ctx context.Context) []mealdb.Category {
	cats, err := c.source.Categories(ctx)
	if err != nil {
		c.opLogger("categories").Error("category list failed", zap.Error(err))
		return nil
	}
	return cats
}

// fanOut runs n calls concurrently and waits for all of them. A failing call
// is reported through onErr and never cancels its siblings.
func (c *Client) fanOut(n int, call func(i int) error, onErr func(i int, err error)) {
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := call(i); err != nil && !errors.Is(err, context.Canceled) {
				onErr(i, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Client) opLogger(op string) *zap.Logger {
	return c.log.With(zap.String("op", op), zap.String("request_id", uuid.NewString()))
}

func collect(meals []*mealdb.Meal) []mealdb.Meal {
	out := make([]mealdb.Meal, 0, len(meals))
	for _, m := range meals {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}
