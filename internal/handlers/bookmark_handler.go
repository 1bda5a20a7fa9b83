package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stackmoneyup/backend/internal/middleware"
	"github.com/stackmoneyup/backend/internal/models"
	"github.com/stackmoneyup/backend/internal/repositories"
	"gorm.io/gorm"
)

// BookmarkHandler handles HTTP requests for saved posts
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	postRepository     repositories.PostRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, postRepo repositories.PostRepository) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepository: bookmarkRepo,
		postRepository:     postRepo,
	}
}

// RegisterBookmarkRoutes registers bookmark routes. All of them require authentication.
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.GET("/bookmarks", h.GetBookmarks)
	g.GET("/bookmarks/:post_id", h.IsBookmarked)
	g.POST("/bookmarks/:post_id", h.AddBookmark)
	g.DELETE("/bookmarks/:post_id", h.RemoveBookmark)
}

// GetBookmarks returns the caller's saved posts, newest first
func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	bookmarks, err := h.bookmarkRepository.GetBookmarksByUser(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Resolve the saved posts so the client gets titles without extra round trips.
	posts := make([]models.Post, 0, len(bookmarks))
	for _, b := range bookmarks {
		post, err := h.postRepository.GetPostByID(c.Request().Context(), b.PostID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue // post was deleted after being saved
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		posts = append(posts, *post)
	}
	return c.JSON(http.StatusOK, posts)
}

// IsBookmarked reports whether the caller saved the given post, along with
// how many users saved it in total
func (h *BookmarkHandler) IsBookmarked(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	postID := c.Param("post_id")

	bookmarked, err := h.bookmarkRepository.IsBookmarked(actor.ID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	count, err := h.bookmarkRepository.CountByPost(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"bookmarked": bookmarked, "count": count})
}

// AddBookmark saves a post for the caller. Saving twice is a no-op.
func (h *BookmarkHandler) AddBookmark(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	postID := c.Param("post_id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	bookmark := &models.Bookmark{UserID: actor.ID, PostID: postID}
	if err := h.bookmarkRepository.AddBookmark(bookmark); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]bool{"bookmarked": true})
}

// RemoveBookmark unsaves a post for the caller
func (h *BookmarkHandler) RemoveBookmark(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	err := h.bookmarkRepository.RemoveBookmark(actor.ID, c.Param("post_id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Bookmark not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"bookmarked": false})
}
