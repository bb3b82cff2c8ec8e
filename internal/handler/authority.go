package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/floodwatch/waterlog-platform/internal/repository"
)

// AuthorityHandler serves the fixed agency reference set.
type AuthorityHandler struct {
	Authorities *repository.AuthorityRepo
}

func NewAuthorityHandler(a *repository.AuthorityRepo) *AuthorityHandler {
	return &AuthorityHandler{Authorities: a}
}

type authorityResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// List returns every authority. The set is seeded reference data, so the
// response is stable across calls.
func (h *AuthorityHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Authorities.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("list authorities: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]authorityResp, 0, len(items))
	for _, a := range items {
		out = append(out, authorityResp{ID: a.ID, Name: a.Name})
	}
	return c.JSON(http.StatusOK, out)
}
