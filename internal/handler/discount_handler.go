package handler

import (
	"net/http"
	"strconv"
	"time"

	"boutique/internal/config"
	"boutique/internal/middleware"
	"boutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Codes promo : vérification publique au panier, CRUD côté dashboard.
type DiscountHandler struct {
	uc *usecase.DiscountUsecase
}

func NewDiscountHandler(uc *usecase.DiscountUsecase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

type DiscountSaveRequest struct {
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Value       int64      `json:"value"`
	MinAmount   *int64     `json:"minAmount"`
	MaxUses     *int64     `json:"maxUses"`
	IsActive    bool       `json:"isActive"`
	StartsAt    *time.Time `json:"startsAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

type DiscountCheckRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

func (h *DiscountHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/discounts/check", h.check)

	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/discounts", h.list)
	admin.POST("/discounts", h.create)
	admin.PUT("/discounts/:id", h.update)
	admin.DELETE("/discounts/:id", h.delete)
}

func (h *DiscountHandler) check(c echo.Context) error {
	var req DiscountCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	out, err := h.uc.CheckCode(c.Request().Context(), req.Code, req.Subtotal)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DiscountHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page invalide"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limite invalide"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DiscountHandler) create(c echo.Context) error {
	var req DiscountSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.SaveDiscountInput{
		Code:        req.Code,
		Description: req.Description,
		Type:        req.Type,
		Value:       req.Value,
		MinAmount:   req.MinAmount,
		MaxUses:     req.MaxUses,
		IsActive:    req.IsActive,
		StartsAt:    req.StartsAt,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *DiscountHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	var req DiscountSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	out, err := h.uc.Update(c.Request().Context(), id, usecase.SaveDiscountInput{
		Code:        req.Code,
		Description: req.Description,
		Type:        req.Type,
		Value:       req.Value,
		MinAmount:   req.MinAmount,
		MaxUses:     req.MaxUses,
		IsActive:    req.IsActive,
		StartsAt:    req.StartsAt,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DiscountHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
