package repository

import (
	"context"
	"fmt"

	"watch-store/internal/data/entity"
	"watch-store/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ProfileRepository manages the role-specific side of a principal. Exactly
// one of the two rows exists per user, matching the role picked at signup.
type ProfileRepository interface {
	CreateSeller(ctx context.Context, profile *entity.SellerProfile) error
	CreateCustomer(ctx context.Context, profile *entity.CustomerProfile) error
	FindSeller(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error)
	FindCustomer(ctx context.Context, userID uuid.UUID) (*entity.CustomerProfile, error)
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

func (r *profileRepository) CreateSeller(ctx context.Context, profile *entity.SellerProfile) error {
	query := `
		INSERT INTO seller_profiles (user_id, business_name, business_address, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.BusinessName,
		profile.BusinessAddress,
		profile.Phone,
		profile.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create seller profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create seller profile %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (r *profileRepository) CreateCustomer(ctx context.Context, profile *entity.CustomerProfile) error {
	query := `
		INSERT INTO customer_profiles (user_id, shipping_address, phone, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.ShippingAddress,
		profile.Phone,
		profile.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create customer profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create customer profile %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (r *profileRepository) FindSeller(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error) {
	query := `
		SELECT user_id, business_name, business_address, phone, created_at
		FROM seller_profiles
		WHERE user_id = $1
	`

	var profile entity.SellerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.BusinessName,
		&profile.BusinessAddress,
		&profile.Phone,
		&profile.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seller profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find seller profile %s: %w", userID.String(), err)
	}

	return &profile, nil
}

func (r *profileRepository) FindCustomer(ctx context.Context, userID uuid.UUID) (*entity.CustomerProfile, error) {
	query := `
		SELECT user_id, shipping_address, phone, created_at
		FROM customer_profiles
		WHERE user_id = $1
	`

	var profile entity.CustomerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.ShippingAddress,
		&profile.Phone,
		&profile.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find customer profile %s: %w", userID.String(), err)
	}

	return &profile, nil
}
