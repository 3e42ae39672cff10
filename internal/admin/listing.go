package admin

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bytebrief/bytebrief/internal/cache"
	"github.com/bytebrief/bytebrief/internal/models"
	"github.com/bytebrief/bytebrief/pkg/config"
	"github.com/bytebrief/bytebrief/pkg/logging"
	"github.com/bytebrief/bytebrief/pkg/telemetry"
)

// PostLister is the slice of the post repository the listing needs
type PostLister interface {
	ListPage(ctx context.Context, offset, limit int, search string) ([]models.Post, error)
	Count(ctx context.Context, search string) (int64, error)
}

// Listing serves the admin "all posts" view: paginated, searchable,
// memoized per (filter, page) for the configured TTL. Entries are
// never invalidated on write; they only time out, so a fresh publish
// may be invisible in the listing for up to one TTL window.
type Listing struct {
	posts    PostLister
	store    cache.Store
	pageSize int
	ttl      time.Duration
	delta    int
	logger   *zap.Logger
}

// NewListing creates the admin listing service
func NewListing(posts PostLister, store cache.Store, cfg *config.ListingConfig) *Listing {
	return &Listing{
		posts:    posts,
		store:    store,
		pageSize: cfg.PageSize,
		ttl:      cfg.CacheTTL,
		delta:    cfg.WindowDelta,
		logger:   logging.WithComponent("admin-listing"),
	}
}

// PageSize returns the configured rows per page
func (l *Listing) PageSize() int {
	return l.pageSize
}

// normalizeFilter maps an absent filter to the "all" sentinel so that
// "" and "all" share one cache key per page.
func normalizeFilter(filter string) string {
	f := strings.TrimSpace(filter)
	if f == "" {
		return "all"
	}
	return f
}

func pageKey(filter string, page int) string {
	return cache.HashKey("admin_posts", normalizeFilter(filter), strconv.Itoa(page))
}

func countKey(filter string) string {
	return cache.HashKey("admin_posts_count", normalizeFilter(filter))
}

// Page is the resolved admin listing page
type Page struct {
	Posts      []models.PostSummary `json:"posts"`
	Page       int                  `json:"page"`
	TotalCount int64                `json:"totalCount"`
	TotalPages int                  `json:"totalPages"`
	Window     []PageItem           `json:"window"`
}

// GetPage returns one page of post summaries for the given filter.
// A requested page beyond the last valid page is clamped down before
// querying, so a nonzero result set never yields an empty overflow
// page. Results for a given (filter, page) are stable for the TTL
// window even if the underlying rows change.
func (l *Listing) GetPage(ctx context.Context, page int, filter string) (*Page, error) {
	ctx, span := telemetry.StartSpan(ctx, "admin.listing.get_page")
	defer span.End()

	if page < 1 {
		page = 1
	}

	// Count first, rows second: the queries run sequentially to keep
	// connection-pool pressure down, and the count bounds the page.
	total, err := l.GetTotalCount(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := l.totalPages(total)
	if page > totalPages {
		page = totalPages
	}

	posts, err := l.fetchPage(ctx, page, filter)
	if err != nil {
		return nil, err
	}

	return &Page{
		Posts:      posts,
		Page:       page,
		TotalCount: total,
		TotalPages: totalPages,
		Window:     PaginationWindow(page, totalPages, l.delta),
	}, nil
}

// fetchPage serves one page from cache, querying the repository only
// on a miss. Repository errors propagate; there is no stale fallback
// and no retry.
func (l *Listing) fetchPage(ctx context.Context, page int, filter string) ([]models.PostSummary, error) {
	key := pageKey(filter, page)

	var cached []models.PostSummary
	if err := cache.GetJSON(l.store, key, &cached); err == nil {
		return cached, nil
	}

	posts, err := l.posts.ListPage(ctx, (page-1)*l.pageSize, l.pageSize, strings.TrimSpace(filter))
	if err != nil {
		return nil, err
	}

	result := make([]models.PostSummary, len(posts))
	for i := range posts {
		result[i] = posts[i].Summary()
	}

	if err := cache.SetJSON(l.store, key, result, l.ttl); err != nil && err != cache.ErrCacheDisabled {
		l.logger.Warn("failed to cache listing page", zap.Error(err))
	}

	return result, nil
}

// GetTotalCount returns the number of posts matching the filter,
// memoized by filter text alone (independent of page).
func (l *Listing) GetTotalCount(ctx context.Context, filter string) (int64, error) {
	key := countKey(filter)

	var cached int64
	if err := cache.GetJSON(l.store, key, &cached); err == nil {
		return cached, nil
	}

	count, err := l.posts.Count(ctx, strings.TrimSpace(filter))
	if err != nil {
		return 0, err
	}

	if err := cache.SetJSON(l.store, key, count, l.ttl); err != nil && err != cache.ErrCacheDisabled {
		l.logger.Warn("failed to cache listing count", zap.Error(err))
	}

	return count, nil
}

// totalPages is ceil(count / pageSize), minimum 1
func (l *Listing) totalPages(count int64) int {
	pages := int((count + int64(l.pageSize) - 1) / int64(l.pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}
