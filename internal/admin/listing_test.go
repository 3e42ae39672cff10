package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bytebrief/bytebrief/internal/models"
	"github.com/bytebrief/bytebrief/pkg/config"
)

// fakeLister counts repository hits and records the last query shape
type fakeLister struct {
	posts      []models.Post
	count      int64
	err        error
	listCalls  int
	countCalls int
	lastOffset int
	lastLimit  int
	lastSearch string
}

func (f *fakeLister) ListPage(ctx context.Context, offset, limit int, search string) ([]models.Post, error) {
	f.listCalls++
	f.lastOffset = offset
	f.lastLimit = limit
	f.lastSearch = search
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func (f *fakeLister) Count(ctx context.Context, search string) (int64, error) {
	f.countCalls++
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

// clockStore is a TTL store driven by a manual clock
type clockStore struct {
	now     time.Time
	values  map[string]string
	expires map[string]time.Time
}

func newClockStore() *clockStore {
	return &clockStore{
		now:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (s *clockStore) Get(key string) (string, error) {
	exp, ok := s.expires[key]
	if !ok || !s.now.Before(exp) {
		return "", errors.New("cache miss")
	}
	return s.values[key], nil
}

func (s *clockStore) Set(key string, value interface{}, ttl time.Duration) error {
	s.values[key] = fmt.Sprintf("%v", value)
	s.expires[key] = s.now.Add(ttl)
	return nil
}

func (s *clockStore) Delete(key string) error {
	delete(s.values, key)
	delete(s.expires, key)
	return nil
}

func (s *clockStore) Exists(key string) (bool, error) {
	_, err := s.Get(key)
	return err == nil, nil
}

func (s *clockStore) Close() error { return nil }

func (s *clockStore) Health(ctx context.Context) error { return nil }

func listingConfig() *config.ListingConfig {
	return &config.ListingConfig{
		PageSize:    9,
		CacheTTL:    30 * time.Second,
		WindowDelta: 2,
	}
}

func somePosts(n int) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{
			ID:    int64(i + 1),
			Title: fmt.Sprintf("Post %d", i+1),
			Slug:  fmt.Sprintf("post-%d", i+1),
		}
	}
	return posts
}

func TestPaginationWindow(t *testing.T) {
	e := PageItem{Ellipsis: true}
	p := func(n int) PageItem { return PageItem{Page: n} }

	tests := []struct {
		name     string
		current  int
		total    int
		delta    int
		expected []PageItem
	}{
		{
			name:     "single page",
			current:  1,
			total:    1,
			delta:    2,
			expected: []PageItem{p(1)},
		},
		{
			name:     "middle page with two gaps",
			current:  5,
			total:    10,
			delta:    2,
			expected: []PageItem{p(1), e, p(3), p(4), p(5), p(6), p(7), e, p(10)},
		},
		{
			name:     "first page",
			current:  1,
			total:    10,
			delta:    2,
			expected: []PageItem{p(1), p(2), p(3), e, p(10)},
		},
		{
			name:     "last page",
			current:  10,
			total:    10,
			delta:    2,
			expected: []PageItem{p(1), e, p(8), p(9), p(10)},
		},
		{
			name:     "gap of exactly one page is not elided",
			current:  4,
			total:    10,
			delta:    2,
			expected: []PageItem{p(1), p(2), p(3), p(4), p(5), p(6), e, p(10)},
		},
		{
			name:     "window covers everything",
			current:  2,
			total:    4,
			delta:    2,
			expected: []PageItem{p(1), p(2), p(3), p(4)},
		},
		{
			name:     "current beyond total clamps",
			current:  99,
			total:    3,
			delta:    2,
			expected: []PageItem{p(1), p(2), p(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaginationWindow(tt.current, tt.total, tt.delta)
			if len(got) != len(tt.expected) {
				t.Fatalf("PaginationWindow() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("PaginationWindow()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGetPage_CachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{posts: somePosts(9), count: 20}
	store := newClockStore()
	listing := NewListing(lister, store, listingConfig())

	if _, err := listing.GetPage(ctx, 1, ""); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if lister.listCalls != 1 || lister.countCalls != 1 {
		t.Fatalf("first request: listCalls=%d countCalls=%d, want 1/1", lister.listCalls, lister.countCalls)
	}

	// Identical request inside the TTL window is served from cache
	store.now = store.now.Add(29 * time.Second)
	if _, err := listing.GetPage(ctx, 1, ""); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if lister.listCalls != 1 || lister.countCalls != 1 {
		t.Errorf("cached request reached repository: listCalls=%d countCalls=%d", lister.listCalls, lister.countCalls)
	}

	// Past the TTL window the repository is queried again
	store.now = store.now.Add(2 * time.Second)
	if _, err := listing.GetPage(ctx, 1, ""); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if lister.listCalls != 2 || lister.countCalls != 2 {
		t.Errorf("expired request did not reach repository: listCalls=%d countCalls=%d", lister.listCalls, lister.countCalls)
	}
}

func TestGetPage_ClampsOverflowPage(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{posts: somePosts(7), count: 25} // 25 posts, 9 per page -> 3 pages
	listing := NewListing(lister, newClockStore(), listingConfig())

	page, err := listing.GetPage(ctx, 999, "")
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}

	if page.Page != 3 {
		t.Errorf("page = %d, want clamped to 3", page.Page)
	}
	if page.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", page.TotalPages)
	}
	if lister.lastOffset != 18 {
		t.Errorf("offset = %d, want 18 (page 3)", lister.lastOffset)
	}
	if len(page.Posts) != 7 {
		t.Errorf("posts = %d, want the last page's results, not an empty set", len(page.Posts))
	}
}

func TestGetPage_EmptyResultSet(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{count: 0}
	listing := NewListing(lister, newClockStore(), listingConfig())

	page, err := listing.GetPage(ctx, 5, "")
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if page.Page != 1 {
		t.Errorf("page = %d, want 1 when there are no posts", page.Page)
	}
	if len(page.Window) != 1 || page.Window[0].Page != 1 {
		t.Errorf("window = %v, want [1]", page.Window)
	}
}

func TestGetPage_FilterSharesKeyWithAllSentinel(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{posts: somePosts(3), count: 3}
	listing := NewListing(lister, newClockStore(), listingConfig())

	if _, err := listing.GetPage(ctx, 1, ""); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if _, err := listing.GetPage(ctx, 1, "all"); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}

	if lister.listCalls != 1 {
		t.Errorf("empty filter and \"all\" should share a cache key, listCalls=%d", lister.listCalls)
	}
}

func TestGetTotalCount_KeyedByFilterOnly(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{posts: somePosts(9), count: 20}
	listing := NewListing(lister, newClockStore(), listingConfig())

	if _, err := listing.GetPage(ctx, 1, "go"); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if _, err := listing.GetPage(ctx, 2, "go"); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}

	if lister.countCalls != 1 {
		t.Errorf("count should be cached across pages of one filter, countCalls=%d", lister.countCalls)
	}
	if lister.listCalls != 2 {
		t.Errorf("distinct pages should each query rows, listCalls=%d", lister.listCalls)
	}
}

func TestGetPage_DistinctFiltersDoNotShareEntries(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{posts: somePosts(2), count: 2}
	listing := NewListing(lister, newClockStore(), listingConfig())

	if _, err := listing.GetPage(ctx, 1, "go"); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if _, err := listing.GetPage(ctx, 1, "rust"); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}

	if lister.listCalls != 2 || lister.countCalls != 2 {
		t.Errorf("filters must not share entries: listCalls=%d countCalls=%d", lister.listCalls, lister.countCalls)
	}
}

func TestGetPage_ErrorPropagates(t *testing.T) {
	ctx := context.Background()
	want := errors.New("connection refused")
	lister := &fakeLister{err: want}
	listing := NewListing(lister, newClockStore(), listingConfig())

	if _, err := listing.GetPage(ctx, 1, ""); !errors.Is(err, want) {
		t.Errorf("GetPage() error = %v, want %v", err, want)
	}
}

func TestGetPage_SearchPassedThroughTrimmed(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{posts: somePosts(1), count: 1}
	listing := NewListing(lister, newClockStore(), listingConfig())

	if _, err := listing.GetPage(ctx, 1, "  kubernetes  "); err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if lister.lastSearch != "kubernetes" {
		t.Errorf("search = %q, want trimmed %q", lister.lastSearch, "kubernetes")
	}
	if lister.lastLimit != 9 {
		t.Errorf("limit = %d, want page size 9", lister.lastLimit)
	}
}
