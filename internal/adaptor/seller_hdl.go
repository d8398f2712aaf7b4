package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"watch-store/internal/dto/request"
	"watch-store/internal/usecase"
	"watch-store/pkg/utils"

	"go.uber.org/zap"
)

// maxImageSize caps product image uploads at 5 MiB
const maxImageSize = 5 << 20

type SellerHandler struct {
	service usecase.SellerService
	catalog usecase.ProductService
	log     *zap.Logger
}

func NewSellerHandler(service usecase.SellerService, catalog usecase.ProductService, log *zap.Logger) *SellerHandler {
	return &SellerHandler{
		service: service,
		catalog: catalog,
		log:     log,
	}
}

// Products handles GET /api/seller/products
func (h *SellerHandler) Products(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Products(r.Context(), sellerID, parsePagination(r))
	if err != nil {
		respondServiceError(w, h.log, err, "list seller products")
		return
	}

	utils.ResponseSuccess(w, "Products loaded", resp)
}

// CreateProduct handles POST /api/seller/products
func (h *SellerHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	var req request.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateProduct(r.Context(), sellerID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created", resp)
}

// UpdateProduct handles PUT /api/seller/products/{id}
func (h *SellerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	var req request.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateProduct(r.Context(), sellerID, productID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated", resp)
}

// DeleteProduct handles DELETE /api/seller/products/{id}
func (h *SellerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), sellerID, productID); err != nil {
		respondServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted", nil)
}

// UploadImage handles POST /api/seller/products/{id}/image (multipart field "image")
func (h *SellerHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.ResponseBadRequest(w, "Missing image file", nil)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		utils.ResponseBadRequest(w, "Unreadable image file", nil)
		return
	}

	resp, err := h.service.UploadProductImage(r.Context(), sellerID, productID, header.Filename, content)
	if err != nil {
		respondServiceError(w, h.log, err, "upload product image")
		return
	}

	utils.ResponseSuccess(w, "Image uploaded", resp)
}

// Orders handles GET /api/seller/orders
func (h *SellerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Orders(r.Context(), sellerID, parseStatusParam(r), parsePagination(r))
	if err != nil {
		respondServiceError(w, h.log, err, "list seller orders")
		return
	}

	utils.ResponseSuccess(w, "Orders loaded", resp)
}

// Order handles GET /api/seller/orders/{id}
func (h *SellerHandler) Order(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	resp, err := h.service.Order(r.Context(), sellerID, orderID)
	if err != nil {
		respondServiceError(w, h.log, err, "get seller order")
		return
	}

	utils.ResponseSuccess(w, "Order loaded", resp)
}

// UpdateOrderStatus handles PUT /api/seller/orders/{id}/status
func (h *SellerHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateOrderStatus(r.Context(), sellerID, orderID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", resp)
}

// Stats handles GET /api/seller/stats
func (h *SellerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Stats(r.Context(), sellerID)
	if err != nil {
		respondServiceError(w, h.log, err, "seller stats")
		return
	}

	utils.ResponseSuccess(w, "Stats loaded", resp)
}

// Analytics handles GET /api/seller/analytics?days=30
func (h *SellerHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	days := utils.ParseInt(r.URL.Query().Get("days"), 30)

	resp, err := h.service.Analytics(r.Context(), sellerID, days)
	if err != nil {
		respondServiceError(w, h.log, err, "seller analytics")
		return
	}

	utils.ResponseSuccess(w, "Analytics loaded", resp)
}

// AnalyticsRevenue handles GET /api/seller/analytics/revenue?days=30
func (h *SellerHandler) AnalyticsRevenue(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	days := utils.ParseInt(r.URL.Query().Get("days"), 30)

	resp, err := h.service.Analytics(r.Context(), sellerID, days)
	if err != nil {
		respondServiceError(w, h.log, err, "seller revenue analytics")
		return
	}

	utils.ResponseSuccess(w, "Revenue loaded", resp.RevenueByDay)
}

// AnalyticsTopProducts handles GET /api/seller/analytics/top-products?days=30
func (h *SellerHandler) AnalyticsTopProducts(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	days := utils.ParseInt(r.URL.Query().Get("days"), 30)

	resp, err := h.service.Analytics(r.Context(), sellerID, days)
	if err != nil {
		respondServiceError(w, h.log, err, "seller top products")
		return
	}

	utils.ResponseSuccess(w, "Top products loaded", resp.TopProducts)
}

// CreateCategory handles POST /api/seller/categories
func (h *SellerHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if _, ok := principalFromContext(w, r); !ok {
		return
	}

	var req request.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.catalog.CreateCategory(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "Category created", resp)
}
