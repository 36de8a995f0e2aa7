package handler

import (
	"net/http"
	"strconv"

	"boutique/internal/config"
	"boutique/internal/middleware"
	"boutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/products : CRUD catalogue, variantes et stock.
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type ProductSaveRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Quantity     int64  `json:"quantity"`
	Image        string `json:"image"`
	CollectionID *int64 `json:"collection_id"`
	IsActive     bool   `json:"is_active"`
}

type VariantSaveRequest struct {
	Size     string `json:"taille"`
	Color    string `json:"couleur"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type StockSetRequest struct {
	VariantID *int64 `json:"variant_id"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/products", h.create)
	admin.PUT("/products/:id", h.update)
	admin.DELETE("/products/:id", h.delete)
	admin.PUT("/products/:id/stock", h.setStock)

	admin.POST("/products/:id/variants", h.createVariant)
	admin.PUT("/variants/:id", h.updateVariant)
	admin.DELETE("/variants/:id", h.deleteVariant)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req ProductSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), usecase.SaveProductInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Image:        req.Image,
		CollectionID: req.CollectionID,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	var req ProductSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), id, usecase.SaveProductInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Image:        req.Image,
		CollectionID: req.CollectionID,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

func (h *AdminProductHandler) setStock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	var req StockSetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.SetStock(c.Request().Context(), adminID, id, req.VariantID, req.Quantity, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"updated": true})
}

func (h *AdminProductHandler) createVariant(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	var req VariantSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	out, err := h.uc.CreateVariant(c.Request().Context(), id, usecase.SaveVariantInput{
		Size:     req.Size,
		Color:    req.Color,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) updateVariant(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	var req VariantSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	out, err := h.uc.UpdateVariant(c.Request().Context(), id, usecase.SaveVariantInput{
		Size:     req.Size,
		Color:    req.Color,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) deleteVariant(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	if err := h.uc.DeleteVariant(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
