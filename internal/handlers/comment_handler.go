package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stackmoneyup/backend/internal/middleware"
	"github.com/stackmoneyup/backend/internal/models"
	"github.com/stackmoneyup/backend/internal/repositories"
	"github.com/stackmoneyup/backend/internal/service"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments       *service.CommentService
	postRepository repositories.PostRepository // To verify the post exists
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *service.CommentService, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		comments:       comments,
		postRepository: postRepo,
	}
}

// RegisterPublicCommentRoutes registers the unauthenticated comment routes
func (h *CommentHandler) RegisterPublicCommentRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/comments", h.GetCommentTree)
	g.GET("/posts/:post_id/comments/count", h.GetCommentCount)
}

// RegisterCommentRoutes registers comment routes requiring authentication
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments/all", h.GetAllComments)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.PUT("/comments/:id/moderate", h.ModerateComment)
}

// GetCommentTree returns the approved comments for a post as a nested tree
func (h *CommentHandler) GetCommentTree(c echo.Context) error {
	postID := c.Param("post_id")

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	tree, err := h.comments.Tree(c.Request().Context(), postID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tree)
}

// GetCommentCount returns the approved comment count for a post
func (h *CommentHandler) GetCommentCount(c echo.Context) error {
	postID := c.Param("post_id")

	count, err := h.comments.Count(c.Request().Context(), postID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// GetAllComments returns every comment for a post, approved or not, for moderation
func (h *CommentHandler) GetAllComments(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	postID := c.Param("post_id")

	rows, err := h.comments.ModerationQueue(c.Request().Context(), actor, postID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comment, err := h.comments.Create(c.Request().Context(), actor, postID, req.Content, req.ParentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment updates an existing comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	commentID := c.Param("id")

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Update(c.Request().Context(), actor, commentID, req.Content)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	commentID := c.Param("id")

	if err := h.comments.Delete(c.Request().Context(), actor, commentID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ModerateComment approves or rejects a comment
func (h *CommentHandler) ModerateComment(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	commentID := c.Param("id")

	var req models.ModerateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Moderate(c.Request().Context(), actor, commentID, *req.Approved)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comment)
}
