package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/floodwatch/waterlog-platform/internal/advisor"
)

// RoutingAdvisor is the completion capability the AI endpoints depend
// on. It is satisfied by *advisor.Advisor and by test fakes.
type RoutingAdvisor interface {
	PredictAuthority(ctx context.Context, description, location string) (string, error)
	Chat(ctx context.Context, message string) (string, error)
}

// AIHandler serves the authority routing advisor and the citizen chat.
type AIHandler struct {
	Advisor RoutingAdvisor
}

func NewAIHandler(a RoutingAdvisor) *AIHandler { return &AIHandler{Advisor: a} }

type predictAuthorityReq struct {
	Description string `json:"description"`
	Location    string `json:"location"`
}

type chatReq struct {
	Message string `json:"message"`
}

// PredictAuthority names the agency responsible for a described
// incident. When every completion model fails, the endpoint degrades to
// the deterministic keyword classifier instead of erroring, and marks
// the response so clients can tell the difference.
func (h *AIHandler) PredictAuthority(c echo.Context) error {
	var req predictAuthorityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description required"})
	}

	name, err := h.Advisor.PredictAuthority(c.Request().Context(), req.Description, req.Location)
	if err != nil {
		// advisor degraded; the keyword heuristic still gives a usable answer
		c.Logger().Warnf("predict authority: %v", err)
		return c.JSON(http.StatusOK, echo.Map{
			"prediction": advisor.ClassifyByKeywords(req.Description),
			"source":     "heuristic",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"prediction": name})
}

// Chat returns a guided assistant reply. Unlike PredictAuthority there is
// no deterministic fallback for free conversation, so a degraded advisor
// surfaces as 502.
func (h *AIHandler) Chat(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message required"})
	}

	reply, err := h.Advisor.Chat(c.Request().Context(), req.Message)
	if err != nil {
		c.Logger().Errorf("chat: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "assistant unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reply": reply})
}
