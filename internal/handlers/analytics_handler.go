package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stackmoneyup/backend/internal/middleware"
	"github.com/stackmoneyup/backend/internal/models"
	"github.com/stackmoneyup/backend/internal/permissions"
	"github.com/stackmoneyup/backend/internal/repositories"
	"github.com/stackmoneyup/backend/internal/service"
)

// AnalyticsHandler serves the dashboard engagement report. It combines
// the persistent counters on the posts table with the raw event streams
// in MongoDB and the bookmark and comment tallies in PostgreSQL.
type AnalyticsHandler struct {
	postRepository      repositories.PostRepository
	bookmarkRepository  repositories.BookmarkRepository
	analyticsRepository repositories.AnalyticsRepository
	comments            *service.CommentService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(
	postRepo repositories.PostRepository,
	bookmarkRepo repositories.BookmarkRepository,
	analyticsRepo repositories.AnalyticsRepository,
	comments *service.CommentService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		postRepository:      postRepo,
		bookmarkRepository:  bookmarkRepo,
		analyticsRepository: analyticsRepo,
		comments:            comments,
	}
}

// RegisterAnalyticsRoutes registers the dashboard analytics routes.
// All of them require authentication.
func (h *AnalyticsHandler) RegisterAnalyticsRoutes(g *echo.Group) {
	g.GET("/dashboard/analytics", h.GetAnalytics)
}

// GetAnalytics returns per-post engagement. Editors and admins see every
// post, other users only the posts they authored.
func (h *AnalyticsHandler) GetAnalytics(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	ctx := c.Request().Context()

	var (
		posts []models.Post
		err   error
	)
	if permissions.Can(actor, permissions.ViewAnalytics, "") {
		posts, err = h.postRepository.GetAllPosts(ctx)
	} else {
		posts, err = h.postRepository.GetPostsByAuthor(ctx, actor.ID)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	engagement, err := h.analyticsRepository.EngagementCounts(ctx, postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	shares, err := h.analyticsRepository.ShareCounts(ctx, postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	bookmarks, err := h.bookmarkRepository.CountsByPosts(postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	report := make([]models.PostAnalytics, 0, len(posts))
	for _, p := range posts {
		commentCount, err := h.comments.Count(ctx, p.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		// The event stream is the source of truth; the row counters only
		// back posts that predate event collection.
		views, reads := p.Views, p.Reads
		if kinds, ok := engagement[p.ID]; ok {
			views = kinds[models.EventView]
			reads = kinds[models.EventRead]
		}

		entry := models.PostAnalytics{
			PostID:       p.ID,
			Slug:         p.Slug,
			TitleEN:      p.TitleEN,
			TitleIT:      p.TitleIT,
			Category:     p.Category,
			Published:    p.Published,
			PublishedAt:  p.PublishedAt,
			Views:        views,
			Reads:        reads,
			Shares:       shares[p.ID],
			Bookmarks:    bookmarks[p.ID],
			CommentCount: commentCount,
		}
		if entry.Views > 0 {
			entry.ReadRate = float64(entry.Reads) / float64(entry.Views)
		}
		report = append(report, entry)
	}
	return c.JSON(http.StatusOK, report)
}
