package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"watch-store/internal/data/entity"
	"watch-store/internal/data/repository"
	"watch-store/internal/dto/request"
	"watch-store/pkg/mailer"
	"watch-store/pkg/redisx"
	"watch-store/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type OTPService interface {
	Issue(ctx context.Context, req *request.SendOTPRequest) error
	Verify(ctx context.Context, req *request.VerifyOTPRequest) error
	Cancel(ctx context.Context, req *request.CancelOTPRequest) error
	// Sweep removes expired codes and stale refresh tokens. It runs on a
	// timer from main.
	Sweep(ctx context.Context) (int64, error)
}

type otpService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	mail   mailer.Sender
	config *utils.Config
	log    *zap.Logger
}

func NewOTPService(
	repo *repository.Repository,
	rdb *redis.Client,
	mail mailer.Sender,
	config *utils.Config,
	log *zap.Logger,
) OTPService {
	return &otpService{
		repo:   repo,
		rdb:    rdb,
		mail:   mail,
		config: config,
		log:    log.With(zap.String("service", "otp")),
	}
}

func (s *otpService) Issue(ctx context.Context, req *request.SendOTPRequest) error {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Send code validation failed", zap.Error(err))
		return err
	}
	purpose := entity.OTPPurpose(req.Purpose)

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for code", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}
	if purpose == entity.OTPPurposeVerification && user.EmailVerified {
		return ErrAlreadyVerified
	}

	if err := s.checkCooldown(ctx, req.Email, purpose); err != nil {
		return err
	}

	code := utils.GenerateOTP(s.config.OTP.Length)
	expiresAt := time.Now().Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute)

	// Replacing guarantees at most one live code per (email, purpose)
	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Email:     req.Email,
		CodeHash:  utils.HashOTP(code),
		Purpose:   purpose,
		ExpiresAt: expiresAt,
		Attempts:  0,
	}
	if err := s.repo.OTP.Replace(ctx, otp); err != nil {
		s.log.Error("Failed to store code", zap.Error(err), zap.String("purpose", req.Purpose))
		return fmt.Errorf("store code: %w", err)
	}

	body := mailer.OTPBody(code, s.config.OTP.ExpiryMinutes)
	if err := s.mail.Send(req.Email, "Your verification code", body); err != nil {
		s.log.Error("Failed to send code email", zap.Error(err))
		return ErrMailDelivery
	}

	s.log.Info("Verification code issued",
		zap.String("purpose", req.Purpose),
		zap.Time("expires_at", expiresAt))

	return nil
}

func (s *otpService) Verify(ctx context.Context, req *request.VerifyOTPRequest) error {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Verify code validation failed", zap.Error(err))
		return err
	}
	purpose := entity.OTPPurpose(req.Purpose)

	otp, err := s.repo.OTP.FindByEmailPurpose(ctx, req.Email, purpose)
	if err != nil {
		s.log.Error("Failed to find code", zap.Error(err), zap.String("purpose", req.Purpose))
		return fmt.Errorf("find code: %w", err)
	}
	if otp == nil {
		return ErrOTPInvalid
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := s.repo.OTP.Delete(ctx, otp.ID); err != nil {
			s.log.Warn("Failed to delete expired code", zap.Error(err))
		}
		return ErrOTPInvalid
	}

	if subtle.ConstantTimeCompare([]byte(utils.HashOTP(req.Code)), []byte(otp.CodeHash)) != 1 {
		attempts, err := s.repo.OTP.IncrementAttempts(ctx, otp.ID)
		if err != nil {
			s.log.Error("Failed to record attempt", zap.Error(err))
			return fmt.Errorf("record attempt: %w", err)
		}
		if attempts >= s.config.OTP.MaxAttempts {
			// Exhausted codes are burned, a new one must be requested
			if err := s.repo.OTP.Delete(ctx, otp.ID); err != nil {
				s.log.Warn("Failed to delete exhausted code", zap.Error(err))
			}
			return ErrOTPTooManyAttempts
		}
		return ErrOTPInvalid
	}

	// Single use: delete before acting on the success
	if err := s.repo.OTP.Delete(ctx, otp.ID); err != nil {
		s.log.Error("Failed to consume code", zap.Error(err))
		return fmt.Errorf("consume code: %w", err)
	}

	if purpose == entity.OTPPurposeVerification {
		if err := s.repo.User.MarkEmailVerified(ctx, req.Email); err != nil {
			s.log.Error("Failed to mark email verified", zap.Error(err))
			return fmt.Errorf("mark email verified: %w", err)
		}
	}

	s.log.Info("Code verified", zap.String("purpose", req.Purpose))

	return nil
}

func (s *otpService) Cancel(ctx context.Context, req *request.CancelOTPRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	if err := s.repo.OTP.DeleteByEmailPurpose(ctx, req.Email, entity.OTPPurpose(req.Purpose)); err != nil {
		return fmt.Errorf("cancel code: %w", err)
	}

	return nil
}

func (s *otpService) Sweep(ctx context.Context) (int64, error) {
	codes, err := s.repo.OTP.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}

	tokens, err := s.repo.RefreshToken.DeleteExpired(ctx)
	if err != nil {
		return codes, err
	}

	if codes+tokens > 0 {
		s.log.Info("Swept expired credentials",
			zap.Int64("codes", codes),
			zap.Int64("refresh_tokens", tokens))
	}

	return codes + tokens, nil
}

// checkCooldown rate-limits resends per (purpose, email). Redis being down
// never blocks issuing a code.
func (s *otpService) checkCooldown(ctx context.Context, email string, purpose entity.OTPPurpose) error {
	key := fmt.Sprintf(redisx.KeyOTPCooldown, purpose, email)
	ttl := time.Duration(s.config.OTP.ResendCooldown) * time.Second
	if ttl <= 0 {
		ttl = redisx.TTLOTPCooldown
	}

	ok, err := s.rdb.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		s.log.Warn("Cooldown check unavailable", zap.Error(err))
		return nil
	}
	if !ok {
		return ErrOTPCooldown
	}

	return nil
}
