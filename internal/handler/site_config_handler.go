package handler

import (
	"net/http"

	"boutique/internal/config"
	"boutique/internal/middleware"
	"boutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SiteConfigHandler struct {
	uc *usecase.SiteConfigUsecase
}

func NewSiteConfigHandler(uc *usecase.SiteConfigUsecase) *SiteConfigHandler {
	return &SiteConfigHandler{uc: uc}
}

func (h *SiteConfigHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/site-config", h.getAll)

	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.PUT("/site-config", h.upsert)
	admin.DELETE("/site-config/:key", h.delete)
}

func (h *SiteConfigHandler) getAll(c echo.Context) error {
	values, err := h.uc.GetAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, values)
}

func (h *SiteConfigHandler) upsert(c echo.Context) error {
	var req map[string]string
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	if err := h.uc.UpsertAll(c.Request().Context(), req); err != nil {
		return writeError(c, err)
	}

	values, err := h.uc.GetAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, values)
}

func (h *SiteConfigHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("key")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
