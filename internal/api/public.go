package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bytebrief/bytebrief/internal/content"
	"github.com/bytebrief/bytebrief/pkg/telemetry"
)

// defaultPublicPageSize bounds category/tag listing pages
const defaultPublicPageSize = 9

// PublicAPI serves the read-only endpoints backed by published posts
type PublicAPI struct {
	content *content.Service
}

// NewPublicAPI creates the public API handlers
func NewPublicAPI(contentSvc *content.Service) *PublicAPI {
	return &PublicAPI{content: contentSvc}
}

// ListPosts handles GET /api/posts?category=&search=
func (a *PublicAPI) ListPosts(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.public.list_posts")
	defer span.End()

	category := c.Query("category")
	search := c.Query("search")

	posts, err := a.content.PublishedPosts(ctx, category, search)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// LatestPosts handles GET /api/posts/latest
func (a *PublicAPI) LatestPosts(c *gin.Context) {
	limit := 6
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 24 {
			limit = n
		}
	}

	posts, err := a.content.LatestPosts(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost handles GET /api/posts/:slug
func (a *PublicAPI) GetPost(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.public.get_post")
	defer span.End()

	post, rendered, err := a.content.PostBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post": post,
		"html": rendered,
	})
}

// ListCategories handles GET /api/categories
func (a *PublicAPI) ListCategories(c *gin.Context) {
	categories, err := a.content.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListTags handles GET /api/tags
func (a *PublicAPI) ListTags(c *gin.Context) {
	tags, err := a.content.Tags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func pageParam(c *gin.Context) int {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	return page
}

// PostsByCategory handles GET /api/categories/:slug/posts
func (a *PublicAPI) PostsByCategory(c *gin.Context) {
	posts, category, err := a.content.PostsByCategory(c.Request.Context(), c.Param("slug"), pageParam(c), defaultPublicPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"posts":    posts,
	})
}

// PostsByTag handles GET /api/tags/:slug/posts
func (a *PublicAPI) PostsByTag(c *gin.Context) {
	posts, tag, err := a.content.PostsByTag(c.Request.Context(), c.Param("slug"), pageParam(c), defaultPublicPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	if tag == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tag":   tag,
		"posts": posts,
	})
}
