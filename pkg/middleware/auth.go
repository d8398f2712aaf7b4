package middleware

import (
	"context"
	"net/http"
	"strings"

	"watch-store/internal/data/entity"
	"watch-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrincipalStore resolves token subjects against the account table so a
// deleted or deactivated account loses access before its tokens expire.
type PrincipalStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// Auth validates the bearer access token, resolves its subject, and puts
// the principal on the request context. Any failure fails closed with 401;
// a signed token for an unknown or inactive account is not trusted.
func Auth(tokens *utils.TokenMaker, users PrincipalStore, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				challenge(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				challenge(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.VerifyToken(parts[1], utils.TokenTypeAccess)
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err), zap.String("path", r.URL.Path))
				challenge(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				challenge(w, "Invalid or expired token")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to resolve token subject", zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsActive {
				logger.Warn("Token for unknown or inactive account",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				challenge(w, "Invalid or expired token")
				return
			}

			// The stored role wins over the claim
			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// challenge rejects with 401 and the bearer challenge header
func challenge(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	utils.ResponseUnauthorized(w, message)
}

// RequireSeller checks the role set by Auth
func RequireSeller(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != "seller" {
				logger.Warn("Non-seller access attempt",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Seller access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
