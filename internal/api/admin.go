package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bytebrief/bytebrief/internal/admin"
	"github.com/bytebrief/bytebrief/internal/auth"
	"github.com/bytebrief/bytebrief/pkg/telemetry"
)

// AdminAPI serves the authenticated console endpoints
type AdminAPI struct {
	service *admin.Service
	listing *admin.Listing
}

// NewAdminAPI creates the admin API handlers
func NewAdminAPI(service *admin.Service, listing *admin.Listing) *AdminAPI {
	return &AdminAPI{service: service, listing: listing}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// ListPosts handles GET /admin/posts?page=&query=
func (a *AdminAPI) ListPosts(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.admin.list_posts")
	defer span.End()

	page := 1
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}

	result, err := a.listing.GetPage(ctx, page, c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPost handles GET /admin/posts/:id
func (a *AdminAPI) GetPost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	post, err := a.service.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost handles POST /admin/posts
func (a *AdminAPI) CreatePost(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.admin.create_post")
	defer span.End()

	var in admin.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	claims := auth.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	post, err := a.service.CreatePost(ctx, claims.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// UpdatePost handles PUT /admin/posts/:id
func (a *AdminAPI) UpdatePost(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.admin.update_post")
	defer span.End()

	id, ok := idParam(c)
	if !ok {
		return
	}

	var in admin.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := a.service.UpdatePost(ctx, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost handles DELETE /admin/posts/:id
func (a *AdminAPI) DeletePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.service.DeletePost(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// CreateCategory handles POST /admin/categories
func (a *AdminAPI) CreateCategory(c *gin.Context) {
	var in admin.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category, err := a.service.CreateCategory(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory handles PUT /admin/categories/:id
func (a *AdminAPI) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var in admin.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category, err := a.service.UpdateCategory(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles DELETE /admin/categories/:id
func (a *AdminAPI) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.service.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// CreateTag handles POST /admin/tags
func (a *AdminAPI) CreateTag(c *gin.Context) {
	var in admin.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tag, err := a.service.CreateTag(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// UpdateTag handles PUT /admin/tags/:id
func (a *AdminAPI) UpdateTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var in admin.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tag, err := a.service.UpdateTag(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// DeleteTag handles DELETE /admin/tags/:id
func (a *AdminAPI) DeleteTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.service.DeleteTag(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
