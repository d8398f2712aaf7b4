package wire

import (
	"net/http"

	"watch-store/internal/adaptor"
	"watch-store/internal/data/repository"
	"watch-store/internal/usecase"
	"watch-store/pkg/mailer"
	"watch-store/pkg/media"
	"watch-store/pkg/middleware"
	"watch-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router *chi.Mux
}

func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	rdb *redis.Client,
	mail mailer.Sender,
	mediaStore media.Store,
	logger *zap.Logger,
) *App {
	tokens := utils.NewTokenMaker(config.JWT)

	service := usecase.NewService(repo, config, tokens, rdb, mail, mediaStore, logger)
	handler := adaptor.NewHandler(service, logger)

	auth := middleware.Auth(tokens, repo.User, logger)
	router := setupRouter(handler, auth, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	auth func(http.Handler) http.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, handler.OTP, auth)
	wireCatalog(r, handler.Product)
	wireCart(r, handler.Cart, handler.Wishlist, auth)
	wireOrder(r, handler.Order, auth)
	wireSeller(r, handler.Seller, auth, logger)

	// Uploaded product images are served straight off disk
	fs := http.StripPrefix("/uploads/products/", http.FileServer(http.Dir(config.Media.UploadDir)))
	r.Get("/uploads/products/*", fs.ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
