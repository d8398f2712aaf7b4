package adaptor

import (
	"encoding/json"
	"net/http"

	"watch-store/internal/dto/request"
	"watch-store/internal/usecase"
	"watch-store/pkg/utils"

	"go.uber.org/zap"
)

type WishlistHandler struct {
	service usecase.WishlistService
	log     *zap.Logger
}

func NewWishlistHandler(service usecase.WishlistService, log *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	resp, err := h.service.List(r.Context(), customerID)
	if err != nil {
		respondServiceError(w, h.log, err, "load wishlist")
		return
	}

	utils.ResponseSuccess(w, "Wishlist loaded", resp)
}

// Add handles POST /api/wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	var req request.AddWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.Add(r.Context(), customerID, &req); err != nil {
		respondServiceError(w, h.log, err, "add to wishlist")
		return
	}

	utils.ResponseCreated(w, "Added to wishlist", nil)
}

// Remove handles DELETE /api/wishlist/{id}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	customerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid wishlist item ID", nil)
		return
	}

	if err := h.service.Remove(r.Context(), customerID, itemID); err != nil {
		respondServiceError(w, h.log, err, "remove wishlist item")
		return
	}

	utils.ResponseSuccess(w, "Item removed", nil)
}
