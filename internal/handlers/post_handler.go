package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"github.com/stackmoneyup/backend/internal/middleware"
	"github.com/stackmoneyup/backend/internal/models"
	"github.com/stackmoneyup/backend/internal/permissions"
	"github.com/stackmoneyup/backend/internal/repositories"
	"github.com/stackmoneyup/backend/internal/service"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to blog posts
type PostHandler struct {
	postRepository      repositories.PostRepository
	tagRepository       repositories.TagRepository
	analyticsRepository repositories.AnalyticsRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, tagRepo repositories.TagRepository, analyticsRepo repositories.AnalyticsRepository) *PostHandler {
	return &PostHandler{
		postRepository:      postRepo,
		tagRepository:       tagRepo,
		analyticsRepository: analyticsRepo,
	}
}

// RegisterPublicPostRoutes registers the unauthenticated post routes
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPublishedPosts)
	g.GET("/posts/search", h.SearchPosts)
	g.GET("/posts/:slug", h.GetPostBySlug)
	g.POST("/posts/:slug/views", h.TrackView)
	g.POST("/posts/:slug/reads", h.TrackRead)
	g.POST("/posts/:slug/shares", h.TrackShare)
}

// RegisterPostRoutes registers the editorial post routes requiring authentication
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/dashboard/posts", h.GetDashboardPosts)
	g.POST("/dashboard/posts", h.CreatePost)
	g.PUT("/dashboard/posts/:id", h.UpdatePost)
	g.DELETE("/dashboard/posts/:id", h.DeletePost)
}

// GetPublishedPosts returns all published posts, newest first
func (h *PostHandler) GetPublishedPosts(c echo.Context) error {
	posts, err := h.postRepository.GetPublishedPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// SearchPosts filters published posts by query, category and tags. If the
// database-side search fails, it falls back to filtering in memory.
func (h *PostHandler) SearchPosts(c echo.Context) error {
	query := c.QueryParam("q")
	category := c.QueryParam("category")
	var tags []string
	if raw := c.QueryParam("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	posts, err := h.postRepository.SearchPosts(c.Request().Context(), query, category, tags, 100)
	if err != nil {
		// Fall back to in-memory filtering over the published set.
		all, ferr := h.postRepository.GetPublishedPosts(c.Request().Context())
		if ferr != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, ferr.Error())
		}
		posts = service.FilterPosts(all, query, category, tags)
		service.SortPostsByPublishedAt(posts)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPostBySlug returns a single published post. Drafts are only visible to
// their author and to editors/admins via the dashboard listing.
func (h *PostHandler) GetPostBySlug(c echo.Context) error {
	slug := c.Param("slug")

	post, err := h.postRepository.GetPostBySlug(c.Request().Context(), slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !post.Published {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// TrackView bumps the view counter and records a view event
func (h *PostHandler) TrackView(c echo.Context) error {
	return h.trackEngagement(c, models.EventView)
}

// TrackRead records a read-completion event
func (h *PostHandler) TrackRead(c echo.Context) error {
	return h.trackEngagement(c, models.EventRead)
}

func (h *PostHandler) trackEngagement(c echo.Context, kind string) error {
	slug := c.Param("slug")
	lang := c.QueryParam("lang")

	post, err := h.postRepository.GetPostBySlug(c.Request().Context(), slug)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	if kind == models.EventView {
		err = h.postRepository.IncrementViews(c.Request().Context(), slug)
	} else {
		err = h.postRepository.IncrementReads(c.Request().Context(), slug)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.analyticsRepository.RecordEngagement(c.Request().Context(), post.ID, kind, lang); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// TrackShare records a share event for a post
func (h *PostHandler) TrackShare(c echo.Context) error {
	slug := c.Param("slug")

	var req models.RecordShareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostBySlug(c.Request().Context(), slug)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	if err := h.analyticsRepository.RecordShare(c.Request().Context(), post.ID, req.Platform); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetDashboardPosts returns drafts and published posts for the caller:
// everything for editors/admins, own posts for regular users
func (h *PostHandler) GetDashboardPosts(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var (
		posts []models.Post
		err   error
	)
	if permissions.Can(actor, permissions.ViewAnalytics, "") {
		posts, err = h.postRepository.GetAllPosts(c.Request().Context())
	} else {
		posts, err = h.postRepository.GetPostsByAuthor(c.Request().Context(), actor.ID)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new blog post
func (h *PostHandler) CreatePost(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Publishing immediately is an editorial privilege.
	if req.Published && !permissions.Can(actor, permissions.PublishPost, "") {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to publish posts")
	}

	if err := h.tagRepository.EnsureTagsExist(c.Request().Context(), req.Tags); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		Slug:       req.Slug,
		TitleEN:    req.TitleEN,
		TitleIT:    req.TitleIT,
		ExcerptEN:  req.ExcerptEN,
		ExcerptIT:  req.ExcerptIT,
		ContentEN:  req.ContentEN,
		ContentIT:  req.ContentIT,
		CoverImage: req.CoverImage,
		Category:   req.Category,
		Tags:       pq.StringArray(req.Tags),
		Published:  req.Published,
		Featured:   req.Featured,
		ReadTime:   req.ReadTime,
		AuthorID:   actor.ID,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost updates an existing blog post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	postID := c.Param("id")

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !permissions.Can(actor, permissions.EditPost, post.AuthorID) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to edit this post")
	}
	if req.Published != nil && *req.Published != post.Published && !permissions.Can(actor, permissions.PublishPost, "") {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to change publication state")
	}

	if req.Tags != nil {
		if err := h.tagRepository.EnsureTagsExist(c.Request().Context(), req.Tags); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	applyPostUpdates(post, &req)

	if err := h.postRepository.UpdatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a blog post
func (h *PostHandler) DeletePost(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !permissions.Can(actor, permissions.DeletePost, post.AuthorID) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// applyPostUpdates copies the fields present in the request onto the post.
func applyPostUpdates(post *models.Post, req *models.UpdatePostRequest) {
	if req.Slug != nil {
		post.Slug = *req.Slug
	}
	if req.TitleEN != nil {
		post.TitleEN = *req.TitleEN
	}
	if req.TitleIT != nil {
		post.TitleIT = *req.TitleIT
	}
	if req.ExcerptEN != nil {
		post.ExcerptEN = *req.ExcerptEN
	}
	if req.ExcerptIT != nil {
		post.ExcerptIT = *req.ExcerptIT
	}
	if req.ContentEN != nil {
		post.ContentEN = *req.ContentEN
	}
	if req.ContentIT != nil {
		post.ContentIT = *req.ContentIT
	}
	if req.CoverImage != nil {
		post.CoverImage = *req.CoverImage
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Tags != nil {
		post.Tags = pq.StringArray(req.Tags)
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}
	if req.ReadTime != nil {
		post.ReadTime = *req.ReadTime
	}
}
