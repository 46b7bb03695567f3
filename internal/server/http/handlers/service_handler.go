package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/chanorders/internal/domain/model"
	"github.com/polkiloo/chanorders/internal/server/http/dto"
)

// ServiceHandler exposes node info, exchange rates and session state.
type ServiceHandler struct {
	facade ServiceFacade
}

// NewServiceHandler constructs ServiceHandler.
func NewServiceHandler(facade ServiceFacade) *ServiceHandler {
	return &ServiceHandler{facade: facade}
}

// Info handles GET /api/info.
func (h *ServiceHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, toInfoResponse(h.facade.Info()))
}

// RefreshInfo handles POST /api/info/refresh.
func (h *ServiceHandler) RefreshInfo(c *gin.Context) {
	if err := h.facade.RefreshInfo(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	h.Info(c)
}

// Rates handles GET /api/rates.
func (h *ServiceHandler) Rates(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RatesResponse{
		Currency: string(h.facade.Currency()),
		Rates:    h.facade.ExchangeRates(),
	})
}

// RefreshRates handles POST /api/rates/refresh.
func (h *ServiceHandler) RefreshRates(c *gin.Context) {
	if err := h.facade.RefreshExchangeRates(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	h.Rates(c)
}

// State handles GET /api/state.
func (h *ServiceHandler) State(c *gin.Context) {
	states := h.facade.States()
	c.JSON(http.StatusOK, dto.StateResponse{
		Orders:         string(states.Orders),
		Info:           string(states.Info),
		ExchangeRates:  string(states.ExchangeRates),
		Version:        states.Version,
		Currency:       string(h.facade.Currency()),
		CurrentOrderID: h.facade.CurrentOrderID(),
	})
}

// SetCurrency handles PUT /api/settings/currency.
func (h *ServiceHandler) SetCurrency(c *gin.Context) {
	var req dto.CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	currency := model.FiatCurrency(strings.ToUpper(strings.TrimSpace(req.Currency)))
	if err := h.facade.SetCurrency(currency); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toInfoResponse(info model.Info) dto.InfoResponse {
	services := make([]dto.ServiceResponse, 0, len(info.Services))
	for _, s := range info.Services {
		services = append(services, dto.ServiceResponse{
			ProductID:      s.ProductID,
			Available:      s.Available,
			Description:    s.Description,
			MinChannelSize: s.MinChannelSize,
			MaxChannelSize: s.MaxChannelSize,
			MinChanExpiry:  s.MinChanExpiry,
			MaxChanExpiry:  s.MaxChanExpiry,
			OrderExpiry:    s.OrderExpiry,
		})
	}
	uris := info.NodeInfo.URIs
	if uris == nil {
		uris = []string{}
	}
	return dto.InfoResponse{
		Capacity: dto.CapacityResponse{
			LocalBalance:  info.Capacity.LocalBalance,
			RemoteBalance: info.Capacity.RemoteBalance,
		},
		Services: services,
		NodeInfo: dto.NodeInfoResponse{
			ActiveChannelsCount: info.NodeInfo.ActiveChannelsCount,
			Alias:               info.NodeInfo.Alias,
			PublicKey:           info.NodeInfo.PublicKey,
			URIs:                uris,
		},
	}
}
