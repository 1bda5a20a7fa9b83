package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stackmoneyup/backend/internal/middleware"
	"github.com/stackmoneyup/backend/internal/models"
	"github.com/stackmoneyup/backend/internal/permissions"
	"github.com/stackmoneyup/backend/internal/repositories"
	"gorm.io/gorm"
)

// TagHandler handles HTTP requests related to tags
type TagHandler struct {
	tagRepository  repositories.TagRepository
	postRepository repositories.PostRepository // To strip deleted tags from posts
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagRepo repositories.TagRepository, postRepo repositories.PostRepository) *TagHandler {
	return &TagHandler{
		tagRepository:  tagRepo,
		postRepository: postRepo,
	}
}

// RegisterPublicTagRoutes registers the unauthenticated tag routes
func (h *TagHandler) RegisterPublicTagRoutes(g *echo.Group) {
	g.GET("/tags", h.GetAllTags)
}

// RegisterTagRoutes registers tag management routes requiring authentication
func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.PUT("/tags/:slug", h.UpdateTag)
	g.DELETE("/tags/:slug", h.DeleteTag)
}

// GetAllTags returns every tag ordered by English name
func (h *TagHandler) GetAllTags(c echo.Context) error {
	tags, err := h.tagRepository.GetAllTags(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, tags)
}

// UpdateTag renames a tag or edits its description. Editor/admin only.
func (h *TagHandler) UpdateTag(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if !permissions.Can(actor, permissions.ManageTags, "") {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to manage tags")
	}
	var req models.UpdateTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagRepository.GetTagBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Tag not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Slug != nil {
		tag.Slug = *req.Slug
	}
	if req.NameEN != nil {
		tag.NameEN = *req.NameEN
	}
	if req.NameIT != nil {
		tag.NameIT = *req.NameIT
	}
	if req.DescriptionEN != nil {
		tag.DescriptionEN = *req.DescriptionEN
	}
	if req.DescriptionIT != nil {
		tag.DescriptionIT = *req.DescriptionIT
	}

	if err := h.tagRepository.UpdateTag(c.Request().Context(), tag); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, tag)
}

// DeleteTag removes a tag and strips it from every post carrying it.
// Editor/admin only.
func (h *TagHandler) DeleteTag(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if !permissions.Can(actor, permissions.ManageTags, "") {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to manage tags")
	}
	slug := c.Param("slug")

	if err := h.postRepository.RemoveTagFromPosts(c.Request().Context(), slug); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.tagRepository.DeleteTag(c.Request().Context(), slug); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Tag not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
