package response

import (
	"time"

	"watch-store/internal/data/entity"
)

type SellerStatsResponse struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	PendingOrders int64   `json:"pending_orders"`
}

type RevenuePointResponse struct {
	Day     string  `json:"day"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type TopProductResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int64   `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

type SellerAnalyticsResponse struct {
	RevenueByDay []RevenuePointResponse `json:"revenue_by_day"`
	TopProducts  []TopProductResponse   `json:"top_products"`
}

type UploadImageResponse struct {
	ImageURL string `json:"image_url"`
}

// Helper converters
func SellerStatsToResponse(stats *entity.SellerStats) SellerStatsResponse {
	return SellerStatsResponse{
		TotalProducts: stats.TotalProducts,
		TotalOrders:   stats.TotalOrders,
		TotalRevenue:  stats.TotalRevenue,
		PendingOrders: stats.PendingOrders,
	}
}

func SellerAnalyticsToResponse(points []*entity.RevenuePoint, tops []*entity.TopProduct) SellerAnalyticsResponse {
	resp := SellerAnalyticsResponse{
		RevenueByDay: []RevenuePointResponse{},
		TopProducts:  []TopProductResponse{},
	}

	for _, point := range points {
		resp.RevenueByDay = append(resp.RevenueByDay, RevenuePointResponse{
			Day:     point.Day.Format(time.DateOnly),
			Orders:  point.Orders,
			Revenue: point.Revenue,
		})
	}
	for _, top := range tops {
		resp.TopProducts = append(resp.TopProducts, TopProductResponse{
			ProductID: top.ProductID.String(),
			Name:      top.Name,
			UnitsSold: top.UnitsSold,
			Revenue:   top.Revenue,
		})
	}

	return resp
}
