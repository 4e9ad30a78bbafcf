// Package ui implements the RecetasFáciles terminal interface with Bubble
// Tea.
//
// The model never fetches on its own. Every user action that needs data
// runs a Browser method inside a tea.Cmd and finishes by delivering a
// state.Snapshot; while a snapshot reports Loading the model keeps
// ticking and re-reading the store until the fetch settles.
//
// # Views
//
//   - Recipes: the current collection after category and tag filters, six
//     rows at a time with "m" revealing more
//   - Favorites: saved recipes resolved against the loaded collection
//   - Detail: one recipe in a scrollable viewport with servings scaling
//
// Overlays for help ("?") and tag filters ("f") are drawn on top of the
// active view.
//
// # Key Bindings
//
//   - /: Search by name, enter to submit
//   - 1-6: Toggle a category
//   - f: Tag filters, x: clear filters
//   - enter: Open recipe, esc: back
//   - s: Toggle favorite
//   - a/v/tab: Recipes or favorites
//   - +/-/0: Scale servings in the detail view
//   - T: Cycle theme, C: compact rows
//   - q or ctrl+c: Quit
package ui
