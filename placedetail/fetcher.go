package placedetail

import (
	"context"
	"log"
	"sync"

	"wayfare/models"
)

// Lookup resolves a single content id against the tourism catalog.
type Lookup interface {
	PlaceDetail(ctx context.Context, contentID int) (models.PlaceDetail, error)
}

// Resolved is the display-field subset cached per content id. A failed
// lookup is cached with empty values so it is not refetched on every render.
type Resolved struct {
	Title      string `json:"title"`
	FirstImage string `json:"firstimage"`
	Overview   string `json:"overview"`
}

// Fetcher resolves display fields for places whose cached fields are empty,
// one concurrent lookup per missing id. Results merge into the cache keyed by
// content id, so a late-arriving response simply overwrites with equivalent
// data.
type Fetcher struct {
	mu     sync.RWMutex
	lookup Lookup
	cache  map[int]Resolved
}

func NewFetcher(lookup Lookup) *Fetcher {
	return &Fetcher{
		lookup: lookup,
		cache:  make(map[int]Resolved),
	}
}

// Missing returns the ids not yet present in the cache: the asymmetric
// difference between the ids referenced and the ids already resolved.
func (f *Fetcher) Missing(ids []int) []int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var missing []int
	seen := make(map[int]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := f.cache[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Resolve fetches every missing id concurrently and returns the cache entries
// for all requested ids. Lookup failures are swallowed here and cached as
// empty values; they never propagate past this boundary.
func (f *Fetcher) Resolve(ctx context.Context, ids []int) map[int]Resolved {
	missing := f.Missing(ids)

	var wg sync.WaitGroup
	for _, id := range missing {
		wg.Add(1)
		go func(contentID int) {
			defer wg.Done()

			var entry Resolved
			detail, err := f.lookup.PlaceDetail(ctx, contentID)
			if err != nil {
				log.Printf("place detail lookup failed for %d: %v", contentID, err)
			} else {
				entry = Resolved{
					Title:      detail.Title,
					FirstImage: detail.FirstImage,
					Overview:   detail.Overview,
				}
			}

			f.mu.Lock()
			f.cache[contentID] = entry
			f.mu.Unlock()
		}(id)
	}
	wg.Wait()

	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[int]Resolved, len(ids))
	for _, id := range ids {
		if entry, ok := f.cache[id]; ok {
			out[id] = entry
		}
	}
	return out
}

// Get returns the cached entry for a single id.
func (f *Fetcher) Get(contentID int) (Resolved, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	entry, ok := f.cache[contentID]
	return entry, ok
}
