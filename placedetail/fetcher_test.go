package placedetail

import (
	"context"
	"errors"
	"sync"
	"testing"

	"wayfare/models"
)

type fakeLookup struct {
	mu      sync.Mutex
	calls   map[int]int
	details map[int]models.PlaceDetail
	fail    map[int]bool
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		calls:   make(map[int]int),
		details: make(map[int]models.PlaceDetail),
		fail:    make(map[int]bool),
	}
}

func (f *fakeLookup) PlaceDetail(ctx context.Context, contentID int) (models.PlaceDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[contentID]++
	if f.fail[contentID] {
		return models.PlaceDetail{}, errors.New("upstream error")
	}
	return f.details[contentID], nil
}

func (f *fakeLookup) callCount(contentID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[contentID]
}

func TestResolveCachesSuccessesAndFailures(t *testing.T) {
	lookup := newFakeLookup()
	lookup.details[1] = models.PlaceDetail{ContentID: 1, Title: "경복궁", FirstImage: "http://img/1.jpg"}
	lookup.fail[2] = true

	fetcher := NewFetcher(lookup)

	resolved := fetcher.Resolve(context.Background(), []int{1, 2})

	if resolved[1].Title != "경복궁" {
		t.Fatalf("unexpected entry for 1: %+v", resolved[1])
	}
	// The failed lookup is cached as an empty entry, not omitted.
	entry, ok := resolved[2]
	if !ok || entry != (Resolved{}) {
		t.Fatalf("expected cached empty entry for 2, got %+v ok=%v", entry, ok)
	}

	// Nothing is missing any more, including the failed id.
	if missing := fetcher.Missing([]int{1, 2}); len(missing) != 0 {
		t.Fatalf("expected no missing ids, got %v", missing)
	}

	// A second resolve must not hit the lookup again.
	fetcher.Resolve(context.Background(), []int{1, 2})
	if n := lookup.callCount(1); n != 1 {
		t.Fatalf("id 1 looked up %d times", n)
	}
	if n := lookup.callCount(2); n != 1 {
		t.Fatalf("failed id 2 looked up %d times", n)
	}
}

func TestMissingDeduplicates(t *testing.T) {
	fetcher := NewFetcher(newFakeLookup())

	missing := fetcher.Missing([]int{5, 5, 7, 5})
	if len(missing) != 2 {
		t.Fatalf("expected deduplicated ids, got %v", missing)
	}
}

func TestGet(t *testing.T) {
	lookup := newFakeLookup()
	lookup.details[9] = models.PlaceDetail{ContentID: 9, Title: "해운대"}
	fetcher := NewFetcher(lookup)

	if _, ok := fetcher.Get(9); ok {
		t.Fatal("unresolved id should not be cached")
	}
	fetcher.Resolve(context.Background(), []int{9})
	entry, ok := fetcher.Get(9)
	if !ok || entry.Title != "해운대" {
		t.Fatalf("unexpected cached entry: %+v ok=%v", entry, ok)
	}
}
