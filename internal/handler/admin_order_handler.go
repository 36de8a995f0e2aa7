package handler

import (
	"net/http"
	"strconv"
	"time"

	"boutique/internal/config"
	"boutique/internal/domain/model"
	"boutique/internal/middleware"
	"boutique/internal/repository"
	"boutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/orders : le dashboard des commandes.
type AdminOrderHandler struct {
	orderUC *usecase.OrderUsecase
	adminUC *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(orderUC *usecase.OrderUsecase, adminUC *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orderUC: orderUC, adminUC: adminUC}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

type OrderUpdateRequest struct {
	CustomerName       *string                       `json:"customerName"`
	CustomerEmail      *string                       `json:"customerEmail"`
	CustomerPhone      *string                       `json:"customerPhone"`
	CustomerStreet     *string                       `json:"customerStreet"`
	CustomerPostalCode *string                       `json:"customerPostalCode"`
	CustomerCity       *string                       `json:"customerCity"`
	CustomerCountry    *string                       `json:"customerCountry"`
	Status             *string                       `json:"status"`
	Notes              *string                       `json:"notes"`
	DiscountType       *string                       `json:"discountType"`
	DiscountValue      *int64                        `json:"discountValue"`
	Items              []usecase.PlaceOrderItemInput `json:"items"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.GET("/orders/:id", h.detail)
	admin.PATCH("/orders/:id", h.update)
	admin.PUT("/orders/:id/status", h.updateStatus)
	admin.DELETE("/orders/:id", h.delete)
	admin.GET("/audit-logs", h.auditLogs)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
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

	status := c.QueryParam("status")

	var fromPtr *time.Time
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from invalide"})
		}
		fromPtr = &tm
	}

	var toPtr *time.Time
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to invalide"})
		}
		toPtr = &tm
	}

	out, err := h.orderUC.ListOrders(c.Request().Context(), repository.OrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: status,
		From:   fromPtr,
		To:     toPtr,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	out, err := h.orderUC.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.adminUC.UpdateOrder(c.Request().Context(), adminID, id, usecase.UpdateOrderInput{
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		CustomerStreet:     req.CustomerStreet,
		CustomerPostalCode: req.CustomerPostalCode,
		CustomerCity:       req.CustomerCity,
		CustomerCountry:    req.CustomerCountry,
		Status:             req.Status,
		Notes:              req.Notes,
		DiscountType:       req.DiscountType,
		DiscountValue:      req.DiscountValue,
		Items:              req.Items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.adminUC.UpdateStatus(c.Request().Context(), adminID, id, req.Status)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id invalide"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.adminUC.DeleteOrder(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

func (h *AdminOrderHandler) auditLogs(c echo.Context) error {
	var filter repository.AuditLogFilter

	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limite invalide"})
		}
		filter.Limit = l
	}
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "offset invalide"})
		}
		filter.Offset = o
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		filter.Action = &a
	}
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "resource_id invalide"})
		}
		filter.ResourceID = &id
	}

	out, err := h.adminUC.ListAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
