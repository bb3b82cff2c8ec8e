package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/floodwatch/waterlog-platform/internal/media"
	"github.com/floodwatch/waterlog-platform/internal/model"
	"github.com/floodwatch/waterlog-platform/internal/queue"
	"github.com/floodwatch/waterlog-platform/internal/repository"
	queue_publisher "github.com/floodwatch/waterlog-platform/internal/service"
)

// ReportHandler serves the report lifecycle: creation, listing, the
// one-way resolve transition, and the upvote/comment side resources.
type ReportHandler struct {
	Reports  *repository.ReportRepo
	Upvotes  *repository.UpvoteRepo
	Comments *repository.CommentRepo
	Media    media.Store
}

func NewReportHandler(reports *repository.ReportRepo, upvotes *repository.UpvoteRepo, comments *repository.CommentRepo, store media.Store) *ReportHandler {
	if reports == nil || upvotes == nil || comments == nil || store == nil {
		panic("nil dependency passed to NewReportHandler")
	}
	return &ReportHandler{Reports: reports, Upvotes: upvotes, Comments: comments, Media: store}
}

var validSeverities = map[string]bool{
	model.SeverityLow:      true,
	model.SeverityMedium:   true,
	model.SeverityHigh:     true,
	model.SeverityCritical: true,
}

// Create files a new report from a multipart form. Required fields are
// title, description, severity, lat, lng and authority_id; the photo is
// optional. The report always starts Open.
func (h *ReportHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	severity := strings.TrimSpace(c.FormValue("severity"))
	if title == "" || description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and description required"})
	}
	if !validSeverities[severity] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "severity must be Low, Medium, High or Critical"})
	}
	lat, errLat := strconv.ParseFloat(c.FormValue("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.FormValue("lng"), 64)
	if errLat != nil || errLng != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lat and lng must be numeric"})
	}
	authorityID, err := strconv.ParseUint(c.FormValue("authority_id"), 10, 64)
	if err != nil || authorityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "authority_id required"})
	}

	var imageKey *string
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable image"})
		}
		url, err := h.Media.Save(fh.Filename, src)
		src.Close()
		if err != nil {
			c.Logger().Errorf("create report: store image: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
		}
		imageKey = &url
	}

	rec := model.Report{
		ReporterID:          uid,
		Title:               title,
		Description:         description,
		Severity:            severity,
		AssignedAuthorityID: authorityID,
		Lat:                 lat,
		Lng:                 lng,
		ImageKey:            imageKey,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Reports.Create(ctx, &rec); err != nil {
		c.Logger().Errorf("create report: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// Fire-and-forget: a broker outage must not fail the submission.
	go func(ev queue.ReportCreatedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishReportCreated(pubCtx, ev)
	}(queue.ReportCreatedEvent{
		ReportID:    rec.ID,
		ReporterID:  rec.ReporterID,
		Title:       rec.Title,
		Severity:    rec.Severity,
		AuthorityID: rec.AssignedAuthorityID,
		Lat:         rec.Lat,
		Lng:         rec.Lng,
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, reportJSON(rec))
}

// List returns reports joined with reporter/authority names, newest
// first. Optional authority_id and status query parameters filter
// conjunctively.
func (h *ReportHandler) List(c echo.Context) error {
	var f repository.ReportFilter
	if s := c.QueryParam("authority_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "authority_id must be numeric"})
		}
		f.AuthorityID = id
	}
	f.Status = strings.TrimSpace(c.QueryParam("status"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Reports.List(ctx, f)
	if err != nil {
		c.Logger().Errorf("list reports: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Resolve closes a report. Only authority accounts may call it; the
// transition is one-way, so resolving twice yields 409 instead of
// silently overwriting the first resolution's note and proof.
func (h *ReportHandler) Resolve(c echo.Context) error {
	if currentRole(c) != model.RoleAuthority {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only authorities can resolve reports"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}

	note := strings.TrimSpace(c.FormValue("note"))

	var proofKey *string
	if fh, err := c.FormFile("proof_image"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable proof image"})
		}
		url, err := h.Media.Save(fh.Filename, src)
		src.Close()
		if err != nil {
			c.Logger().Errorf("resolve report: store proof: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
		}
		proofKey = &url
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	rec, err := h.Reports.Resolve(ctx, id, note, proofKey)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
		case repository.ErrAlreadyResolved:
			return c.JSON(http.StatusConflict, echo.Map{"error": "report already resolved"})
		}
		c.Logger().Errorf("resolve report: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	go func(ev queue.ReportResolvedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishReportResolved(pubCtx, ev)
	}(queue.ReportResolvedEvent{
		ReportID:    rec.ID,
		ResolvedBy:  uid,
		AuthorityID: rec.AssignedAuthorityID,
		Note:        note,
		ResolvedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, reportJSON(rec))
}

// reportResp is the JSON shape of a single report.
type reportResp struct {
	ID                  uint64     `json:"id"`
	ReporterID          uint64     `json:"reporter_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Severity            string     `json:"severity"`
	Status              string     `json:"status"`
	AssignedAuthorityID uint64     `json:"assigned_authority_id"`
	Lat                 float64    `json:"lat"`
	Lng                 float64    `json:"lng"`
	ImageURL            *string    `json:"image_url"`
	ResolutionNote      *string    `json:"resolution_note"`
	ResolutionProofURL  *string    `json:"resolution_proof_image"`
	CreatedAt           time.Time  `json:"created_at"`
	ResolvedAt          *time.Time `json:"resolved_at"`
}

func reportJSON(r model.Report) reportResp {
	return reportResp{
		ID:                  r.ID,
		ReporterID:          r.ReporterID,
		Title:               r.Title,
		Description:         r.Description,
		Severity:            r.Severity,
		Status:              r.Status,
		AssignedAuthorityID: r.AssignedAuthorityID,
		Lat:                 r.Lat,
		Lng:                 r.Lng,
		ImageURL:            r.ImageKey,
		ResolutionNote:      r.ResolutionNote,
		ResolutionProofURL:  r.ResolutionProofKey,
		CreatedAt:           r.CreatedAt,
		ResolvedAt:          r.ResolvedAt,
	}
}
