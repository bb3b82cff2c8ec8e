package handler

// Upvote and comment endpoints. Both hang off a report; upvotes are
// idempotent by the storage layer's unique pair constraint, comments are
// an append-only thread listed oldest first.

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type commentReq struct {
	Text string `json:"text"`
}

// Upvote records the caller's vote on a report. Voting twice is a silent
// no-op; the response is 201 either way so clients need no special case.
func (h *ReportHandler) Upvote(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Upvotes.Add(ctx, id, uid); err != nil {
		c.Logger().Errorf("upvote: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusCreated)
}

// CountUpvotes returns the vote tally for a report.
func (h *ReportHandler) CountUpvotes(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	n, err := h.Upvotes.Count(ctx, id)
	if err != nil {
		c.Logger().Errorf("count upvotes: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// AddComment appends a comment to a report's thread.
func (h *ReportHandler) AddComment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	cm, err := h.Comments.Add(ctx, id, uid, req.Text)
	if err != nil {
		c.Logger().Errorf("add comment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":           cm.ID,
		"report_id":    cm.ReportID,
		"user_id":      cm.UserID,
		"comment_text": cm.Text,
		"created_at":   cm.CreatedAt,
	})
}

// ListComments returns a report's comments oldest first. A report with no
// comments yields an empty array, not an error.
func (h *ReportHandler) ListComments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Comments.ListByReport(ctx, id)
	if err != nil {
		c.Logger().Errorf("list comments: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, items)
}
