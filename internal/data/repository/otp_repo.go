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

type OTPRepository interface {
	// Replace removes any live code for the same (email, purpose) pair
	// before inserting, so at most one code is redeemable at a time.
	Replace(ctx context.Context, otp *entity.OTP) error
	FindByEmailPurpose(ctx context.Context, email string, purpose entity.OTPPurpose) (*entity.OTP, error)
	IncrementAttempts(ctx context.Context, id uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEmailPurpose(ctx context.Context, email string, purpose entity.OTPPurpose) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Replace(ctx context.Context, otp *entity.OTP) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin otp transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM otps WHERE email = $1 AND purpose = $2`,
		otp.Email, otp.Purpose,
	)
	if err != nil {
		r.log.Error("Failed to clear previous otp",
			zap.Error(err),
			zap.String("purpose", string(otp.Purpose)),
		)
		return fmt.Errorf("clear previous otp: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO otps (id, email, code_hash, purpose, expires_at, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		otp.ID,
		otp.Email,
		otp.CodeHash,
		otp.Purpose,
		otp.ExpiresAt,
		otp.Attempts,
		otp.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create otp",
			zap.Error(err),
			zap.String("purpose", string(otp.Purpose)),
		)
		return fmt.Errorf("create otp: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit otp transaction: %w", err)
	}

	return nil
}

func (r *otpRepository) FindByEmailPurpose(ctx context.Context, email string, purpose entity.OTPPurpose) (*entity.OTP, error) {
	query := `
		SELECT id, email, code_hash, purpose, expires_at, attempts, created_at
		FROM otps
		WHERE email = $1 AND purpose = $2
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, email, purpose).Scan(
		&otp.ID,
		&otp.Email,
		&otp.CodeHash,
		&otp.Purpose,
		&otp.ExpiresAt,
		&otp.Attempts,
		&otp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find otp",
			zap.Error(err),
			zap.String("purpose", string(purpose)),
		)
		return nil, fmt.Errorf("find otp: %w", err)
	}

	return &otp, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		UPDATE otps
		SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts
	`

	var attempts int
	err := r.db.QueryRow(ctx, query, id).Scan(&attempts)
	if err != nil {
		r.log.Error("Failed to increment otp attempts",
			zap.Error(err),
			zap.String("otp_id", id.String()),
		)
		return 0, fmt.Errorf("increment otp attempts: %w", err)
	}

	return attempts, nil
}

func (r *otpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM otps WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete otp",
			zap.Error(err),
			zap.String("otp_id", id.String()),
		)
		return fmt.Errorf("delete otp: %w", err)
	}

	return nil
}

func (r *otpRepository) DeleteByEmailPurpose(ctx context.Context, email string, purpose entity.OTPPurpose) error {
	query := `DELETE FROM otps WHERE email = $1 AND purpose = $2`

	_, err := r.db.Exec(ctx, query, email, purpose)
	if err != nil {
		r.log.Error("Failed to delete otp by purpose",
			zap.Error(err),
			zap.String("purpose", string(purpose)),
		)
		return fmt.Errorf("delete otp by purpose: %w", err)
	}

	return nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM otps WHERE expires_at <= NOW()`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to delete expired otps", zap.Error(err))
		return 0, fmt.Errorf("delete expired otps: %w", err)
	}

	return result.RowsAffected(), nil
}
