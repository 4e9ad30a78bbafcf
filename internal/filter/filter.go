// Package filter holds the category and tag selection and the pure
// projection of a recipe collection through it.
package filter

import (
	"slices"
	"sync"

	"github.com/recetasfaciles/recetas/internal/recipe"
)

// Selection is the set of selected categories and tags, in selection order.
type Selection struct {
	mu         sync.RWMutex
	categories []string
	tags       []string
}

// ToggleCategory flips name and reports whether it is selected afterwards.
func (s *Selection) ToggleCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var on bool
	s.categories, on = toggle(s.categories, name)
	return on
}

// ToggleTag flips tag and reports whether it is selected afterwards.
func (s *Selection) ToggleTag(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var on bool
	s.tags, on = toggle(s.tags, tag)
	return on
}

// Clear drops every selected category and tag.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.categories = nil
	s.tags = nil
	s.mu.Unlock()
}

// Categories returns the selected categories.
func (s *Selection) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// Tags returns the selected tags.
func (s *Selection) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tags)
}

func (s *Selection) HasCategory(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.categories, name)
}

func (s *Selection) HasTag(tag string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.tags, tag)
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories) == 0 && len(s.tags) == 0
}

// Apply projects recipes through the current selection.
func (s *Selection) Apply(recipes []recipe.Recipe) []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Project(recipes, s.categories, s.tags)
}

// Project keeps the recipes whose category is selected (or no category is
// selected) and that carry at least one selected tag (or no tag is
// selected). Input order is preserved; recipes is not modified.
func Project(recipes []recipe.Recipe, categories, tags []string) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if len(categories) > 0 && !slices.Contains(categories, r.Category) {
			continue
		}
		if len(tags) > 0 && !slices.ContainsFunc(tags, r.HasTag) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// AvailableTags lists every tag present in recipes once, in order of first
// appearance.
func AvailableTags(recipes []recipe.Recipe) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range recipes {
		for _, t := range r.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func toggle(list []string, v string) ([]string, bool) {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(list, i, i+1), false
	}
	return append(list, v), true
}
