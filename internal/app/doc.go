// Package app is the composition root of recetas and holds the browsing
// controller.
//
// # Startup
//
//	Run()
//	  ├─> config.Load()        TOML, .env, environment
//	  ├─> logging.New()        zap logger, file output by default
//	  ├─> mealdb.NewClient()   HTTP client for the recipe source
//	  ├─> kv.Open()            file or sqlite storage
//	  ├─> favorites.Load()     favorite ids from storage
//	  ├─> NewBrowser()         session controller
//	  └─> ui.Run()             TUI (blocks)
//
// Configuration, logger, source and storage failures are fatal and returned
// from Run. Unreadable prefs and favorites degrade to defaults with a warning.
//
// # Browser
//
// Browser turns user actions into fetches and runs each through the
// state.Store protocol (Begin, then Fulfill or Reject):
//
//   - Start: random recipes on first show
//   - Search: search a non-blank term, or random recipes for a blank one;
//     a term repeated within a second is dropped
//   - ToggleCategory: fetch a newly selected category; deselecting the only
//     selected category goes back to random recipes
//   - ToggleTag, ClearFilters: selection only, no fetch
//   - OpenRecipe, CloseRecipe: the detail view slot
//   - OpenFavorites, ToggleFavorite: the favorites view
//
// The fetch client swallows transport failures, so a fetch is only rejected
// when its context ends first. Methods block while their fetch runs; the UI
// calls them from tea.Cmd goroutines.
package app
