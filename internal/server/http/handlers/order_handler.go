package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/chanorders/internal/app"
	"github.com/polkiloo/chanorders/internal/domain/model"
	"github.com/polkiloo/chanorders/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders := h.facade.Orders()
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Refresh handles POST /api/orders/:id/refresh.
func (h *OrderHandler) Refresh(c *gin.Context) {
	id := c.Param("id")
	if err := h.facade.RefreshOrder(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	order, err := h.facade.Order(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// RefreshAll handles POST /api/orders/refresh.
func (h *OrderHandler) RefreshAll(c *gin.Context) {
	if err := h.facade.RefreshOrders(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	h.List(c)
}

// Remove handles DELETE /api/orders/:id.
func (h *OrderHandler) Remove(c *gin.Context) {
	if err := h.facade.RemoveOrder(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.BuyChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	resp, err := h.facade.PlaceOrder(c.Request.Context(), model.BuyChannelRequest{
		ProductID:          req.ProductID,
		RemoteBalance:      req.RemoteBalance,
		LocalBalance:       req.LocalBalance,
		ChannelExpiryWeeks: req.ChannelExpiryWeeks,
	})
	// The purchase stands even if pulling the new order into the cache failed.
	if err != nil && resp.OrderID == "" {
		abortWithError(c, err)
		return
	}

	out := dto.BuyChannelResponse{
		OrderID:     resp.OrderID,
		LNInvoice:   resp.LNInvoice,
		BTCAddress:  resp.BTCAddress,
		PriceSats:   resp.PriceSats,
		TotalAmount: resp.TotalAmount,
		OrderExpiry: resp.OrderExpiry,
	}
	if fiat, err := h.facade.FiatValue(resp.TotalAmount); err == nil {
		out.FiatTotal = &fiat
		out.Currency = string(h.facade.Currency())
	}

	c.Header("Location", "/api/orders/"+resp.OrderID)
	c.JSON(http.StatusCreated, out)
}

func toOrderResponse(o app.OrderView) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            o.Record.ID,
		StatusCode:    o.Record.StatusCode,
		StatusMessage: o.Record.StatusMessage,
		CreatedAt:     o.Record.CreatedAt,
		Date:          time.UnixMilli(o.Record.CreatedAt).UTC().Format(time.RFC3339),
		Category:      string(o.Classification.Category),
		Action:        string(o.Classification.Action),
		ButtonText:    o.Classification.ButtonText,
		Icon:          string(o.Classification.Icon),
		Page:          string(o.Classification.Page),
		Removable:     o.Classification.Removable,
	}
}
