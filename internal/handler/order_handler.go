package handler

import (
	"net/http"

	"boutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders : création au checkout et suivi par numéro, côté vitrine.
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	OrderNumber        string                        `json:"orderNumber"`
	CustomerName       string                        `json:"customerName"`
	CustomerEmail      string                        `json:"customerEmail"`
	CustomerPhone      string                        `json:"customerPhone"`
	CustomerStreet     string                        `json:"customerStreet"`
	CustomerPostalCode string                        `json:"customerPostalCode"`
	CustomerCity       string                        `json:"customerCity"`
	CustomerCountry    string                        `json:"customerCountry"`
	SubtotalAmount     int64                         `json:"subtotalAmount"`
	DiscountType       string                        `json:"discountType"`
	DiscountValue      int64                         `json:"discountValue"`
	DiscountAmount     int64                         `json:"discountAmount"`
	DiscountCode       string                        `json:"discountCode"`
	TotalAmount        int64                         `json:"totalAmount"`
	Notes              string                        `json:"notes"`
	Items              []usecase.PlaceOrderItemInput `json:"items"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", h.create)
	e.GET("/orders/number/:orderNumber", h.getByNumber)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corps invalide"})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		OrderNumber:        req.OrderNumber,
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		CustomerStreet:     req.CustomerStreet,
		CustomerPostalCode: req.CustomerPostalCode,
		CustomerCity:       req.CustomerCity,
		CustomerCountry:    req.CustomerCountry,
		DiscountType:       req.DiscountType,
		DiscountValue:      req.DiscountValue,
		DiscountCode:       req.DiscountCode,
		TotalAmount:        req.TotalAmount,
		Notes:              req.Notes,
		Items:              req.Items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) getByNumber(c echo.Context) error {
	out, err := h.uc.GetOrderByNumber(c.Request().Context(), c.Param("orderNumber"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
