package adaptor

import (
	"net/http"

	"watch-store/internal/data/entity"
	"watch-store/internal/dto/request"
	"watch-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// principalFromContext pulls the authenticated user set by the Auth
// middleware; a miss means the route was wired without it.
func principalFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func parsePagination(r *http.Request) request.PaginatedRequest {
	q := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(q.Get("page"), 1),
		PerPage: utils.ParseInt(q.Get("per_page"), 10),
	}
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseProductFilter(r *http.Request) entity.ProductFilter {
	q := r.URL.Query()

	filter := entity.ProductFilter{
		Featured: utils.ParseBool(q.Get("featured")),
		MinPrice: utils.ParseFloat(q.Get("min_price")),
		MaxPrice: utils.ParseFloat(q.Get("max_price")),
		Sort:     entity.ProductSort(q.Get("sort")),
	}
	if category := q.Get("category"); category != "" {
		filter.Category = &category
	}
	if search := q.Get("search"); search != "" {
		filter.Search = &search
	}

	return filter
}

func parseStatusParam(r *http.Request) *string {
	if status := r.URL.Query().Get("status"); status != "" {
		return &status
	}
	return nil
}
