package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/adapter/biteship"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/server/http/dto"
	"github.com/mymedina/commerce/internal/usecase"
)

// ShipmentHandler manages shipment booking, tracking and rate endpoints.
type ShipmentHandler struct {
	facade ShipmentFacade
}

// NewShipmentHandler constructs ShipmentHandler.
func NewShipmentHandler(facade ShipmentFacade) *ShipmentHandler {
	return &ShipmentHandler{facade: facade}
}

// Create handles POST /api/shipments for staff recording a manual shipment.
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid order_id"})
		return
	}

	shipment, err := h.facade.CreateShipment(c.Request.Context(), usecase.CreateShipmentInput{
		OrderID: orderID,
		Courier: req.Courier,
		Service: req.Service,
		Cost:    req.Cost,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toShipmentResponse(*shipment))
}

// Book handles POST /api/shipments/book for staff booking through the
// courier aggregator.
func (h *ShipmentHandler) Book(c *gin.Context) {
	var req dto.BookShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid order_id"})
		return
	}

	shipment, err := h.facade.BookCourierShipment(c.Request.Context(), usecase.BookCourierInput{
		OrderID:        orderID,
		CourierCompany: req.CourierCompany,
		CourierType:    req.CourierType,
		Origin: biteship.Contact{
			Name:       req.OriginName,
			Phone:      req.OriginPhone,
			Address:    req.OriginAddress,
			AreaID:     req.OriginAreaID,
			PostalCode: req.OriginPostalCode,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toShipmentResponse(*shipment))
}

// Rates handles POST /api/shipments/rates.
func (h *ShipmentHandler) Rates(c *gin.Context) {
	var req dto.CheckRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}

	items := make([]biteship.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, biteship.Item{
			Name:     item.Name,
			Value:    item.Value,
			Weight:   item.Weight,
			Quantity: item.Quantity,
		})
	}

	pricing, err := h.facade.CheckRates(c.Request.Context(), biteship.RatesRequest{
		OriginAreaID:          req.OriginAreaID,
		DestinationAreaID:     req.DestinationAreaID,
		OriginPostalCode:      req.OriginPostalCode,
		DestinationPostalCode: req.DestinationPostalCode,
		Couriers:              req.Couriers,
		Items:                 items,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricing)
}

// Areas handles GET /api/shipments/areas.
func (h *ShipmentHandler) Areas(c *gin.Context) {
	areas, err := h.facade.SearchAreas(c.Request.Context(), c.Query("input"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, areas)
}

// UpdateStatus handles PATCH /api/shipments/:id/status for staff.
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}
	shipment, err := h.facade.UpdateShipmentStatus(c.Request.Context(), id, model.ShipmentStatus(req.Status), req.Waybill)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(*shipment))
}

// SetWaybill handles PATCH /api/shipments/:id/waybill for staff.
func (h *ShipmentHandler) SetWaybill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.WaybillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}
	shipment, err := h.facade.SetShipmentWaybill(c.Request.Context(), id, req.Waybill)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(*shipment))
}

// GetByOrder handles GET /api/orders/:id/shipment.
func (h *ShipmentHandler) GetByOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	shipment, err := h.facade.OrderShipment(c.Request.Context(), orderID, CurrentUserID(c), CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(*shipment))
}

// TrackByOrder handles GET /api/orders/:id/shipment/tracking.
func (h *ShipmentHandler) TrackByOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tracking, err := h.facade.TrackOrderShipment(c.Request.Context(), orderID, CurrentUserID(c), CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracking)
}

func toShipmentResponse(shipment model.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:          shipment.ID.String(),
		OrderID:     shipment.OrderID.String(),
		Courier:     shipment.Courier,
		Service:     shipment.Service,
		Waybill:     shipment.Waybill,
		TrackingURL: shipment.TrackingURL,
		Status:      string(shipment.Status),
		Cost:        shipment.Cost,
		ShippedAt:   shipment.ShippedAt,
		DeliveredAt: shipment.DeliveredAt,
	}
}
