package adaptor

import (
	"encoding/json"
	"net/http"

	"watch-store/internal/dto/request"
	"watch-store/internal/usecase"
	"watch-store/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// Checkout handles POST /api/checkout/process and POST /api/orders
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Checkout(r.Context(), customerID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "checkout")
		return
	}

	utils.ResponseCreated(w, "Order placed", resp)
}

// List handles GET /api/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	resp, err := h.service.List(r.Context(), customerID, parseStatusParam(r), parsePagination(r))
	if err != nil {
		respondServiceError(w, h.log, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "Orders loaded", resp)
}

// Get handles GET /api/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	resp, err := h.service.Get(r.Context(), customerID, orderID)
	if err != nil {
		respondServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "Order loaded", resp)
}

// Cancel handles POST /api/orders/{id}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	resp, err := h.service.Cancel(r.Context(), customerID, orderID)
	if err != nil {
		respondServiceError(w, h.log, err, "cancel order")
		return
	}

	utils.ResponseSuccess(w, "Order cancelled", resp)
}

// Stats handles GET /api/orders/stats
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Stats(r.Context(), customerID)
	if err != nil {
		respondServiceError(w, h.log, err, "order stats")
		return
	}

	utils.ResponseSuccess(w, "Order stats loaded", resp)
}
