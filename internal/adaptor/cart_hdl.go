package adaptor

import (
	"encoding/json"
	"net/http"

	"watch-store/internal/dto/request"
	"watch-store/internal/usecase"
	"watch-store/pkg/utils"

	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// View handles GET /api/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	resp, err := h.service.View(r.Context(), customerID)
	if err != nil {
		respondServiceError(w, h.log, err, "view cart")
		return
	}

	utils.ResponseSuccess(w, "Cart loaded", resp)
}

// Add handles POST /api/cart/items
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	var req request.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Add(r.Context(), customerID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "add to cart")
		return
	}

	utils.ResponseCreated(w, "Added to cart", resp)
}

// Update handles PUT /api/cart/items/{id}
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid cart item ID", nil)
		return
	}

	var req request.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateItem(r.Context(), customerID, itemID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update cart item")
		return
	}

	utils.ResponseSuccess(w, "Cart updated", resp)
}

// Remove handles DELETE /api/cart/items/{id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid cart item ID", nil)
		return
	}

	resp, err := h.service.RemoveItem(r.Context(), customerID, itemID)
	if err != nil {
		respondServiceError(w, h.log, err, "remove cart item")
		return
	}

	utils.ResponseSuccess(w, "Item removed", resp)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), customerID); err != nil {
		respondServiceError(w, h.log, err, "clear cart")
		return
	}

	utils.ResponseSuccess(w, "Cart cleared", nil)
}
