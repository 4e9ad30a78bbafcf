// Package state provides the thread-safe client state store shared by the
// browsing controller and the UI.
//
// # Overview
//
// The store holds the recipe collection, the current recipe opened in the
// detail view, the loading flag, the last error message, the search text and
// whether the collection came from a user search or category pick rather
// than random browsing.
//
// # Fetch Protocol
//
// Every fetch runs in three phases:
//
//	t := store.Begin(state.KindSearch)     // pending: loading=true, error cleared
//	recipes := client.Search(ctx, term)
//	store.Fulfill(t, recipes)              // fulfilled: collection replaced
//	// or
//	store.Reject(t, ctx.Err())             // rejected: error message recorded
//
// Fulfill deduplicates the incoming batch by id, keeping the first
// occurrence. Batches replace the collection; they are never merged.
// By-id fetches use FulfillCurrent and only touch the current slot.
//
// # Generations
//
// Random, search and category fetches share one lane and by-id fetches have
// their own. Each Begin supersedes the previous ticket of its lane, and a
// superseded ticket can no longer fulfill or reject: a slow response that
// arrives after a newer fetch started is dropped and the call reports false.
// Loading stays set while the newest ticket of either lane is open.
//
// # Concurrency Model
//
// A sync.RWMutex guards the snapshot. Writers take the lock only to swap
// data in; Snapshot returns deep copies so the UI can render without
// holding the lock.
//
// The zero Store is ready to use.
package state
