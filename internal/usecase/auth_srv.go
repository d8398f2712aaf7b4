package usecase

import (
	"context"
	"fmt"
	"time"

	"watch-store/internal/data/entity"
	"watch-store/internal/data/repository"
	"watch-store/internal/dto/request"
	"watch-store/internal/dto/response"
	"watch-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*response.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *utils.TokenMaker
	otp    OTPService
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *utils.TokenMaker,
	otp OTPService,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		otp:    otp,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %w", ErrDuplicateIdentity)
	}

	existing, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %w", ErrDuplicateIdentity)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  hashed,
		Role:          entity.UserRole(req.Role),
		EmailVerified: false,
		IsActive:      true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create user: %w", err)
	}

	resp := &response.AuthResponse{User: response.UserToResponse(user)}

	// The role is fixed at signup; the matching profile row is created here
	// and never switched afterwards.
	switch user.Role {
	case entity.RoleSeller:
		profile := &entity.SellerProfile{
			UserID:          user.ID,
			BusinessName:    *req.BusinessName,
			BusinessAddress: req.BusinessAddress,
			Phone:           req.Phone,
			CreatedAt:       now,
		}
		if err := s.repo.Profile.CreateSeller(ctx, profile); err != nil {
			s.log.Error("Failed to create seller profile", zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, fmt.Errorf("create seller profile: %w", err)
		}
		resp.User.Seller = response.SellerProfileToResponse(profile)
	default:
		profile := &entity.CustomerProfile{
			UserID:          user.ID,
			ShippingAddress: req.ShippingAddress,
			Phone:           req.Phone,
			CreatedAt:       now,
		}
		if err := s.repo.Profile.CreateCustomer(ctx, profile); err != nil {
			s.log.Error("Failed to create customer profile", zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, fmt.Errorf("create customer profile: %w", err)
		}
		resp.User.Customer = response.CustomerProfileToResponse(profile)
	}

	go s.sendVerificationCode(user.Email)

	if err := s.attachTokenPair(ctx, user, resp); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	// The identifier is tried as an email first, then as a username
	user, err := s.repo.User.FindByEmail(ctx, req.Identifier)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("identifier", req.Identifier))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		user, err = s.repo.User.FindByUsername(ctx, req.Identifier)
		if err != nil {
			s.log.Error("Failed to find user", zap.Error(err), zap.String("identifier", req.Identifier))
			return nil, fmt.Errorf("find user: %w", err)
		}
	}
	if user == nil {
		s.log.Warn("Login for unknown identifier", zap.String("identifier", req.Identifier))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountDisabled
	}

	now := time.Now()
	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Login still succeeds
		s.log.Warn("Failed to record last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	} else {
		user.LastLoginAt = &now
	}

	resp := &response.AuthResponse{User: response.UserToResponse(user)}
	if err := s.attachProfile(ctx, user, &resp.User); err != nil {
		return nil, err
	}
	if err := s.attachTokenPair(ctx, user, resp); err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*response.AuthResponse, error) {
	claims, err := s.tokens.VerifyToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, ErrUnauthorized
	}

	stored, err := s.repo.RefreshToken.FindValid(ctx, refreshToken)
	if err != nil {
		s.log.Error("Failed to look up refresh token", zap.Error(err))
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	if stored == nil {
		s.log.Warn("Refresh with revoked or unknown token", zap.String("subject", claims.Subject))
		return nil, ErrUnauthorized
	}

	user, err := s.repo.User.FindByID(ctx, stored.UserID)
	if err != nil {
		s.log.Error("Failed to load user for refresh", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrUnauthorized
	}

	// Rotate: the presented token is single-use
	if err := s.repo.RefreshToken.Revoke(ctx, refreshToken); err != nil {
		s.log.Error("Failed to revoke rotated token", zap.Error(err))
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	resp := &response.AuthResponse{User: response.UserToResponse(user)}
	if err := s.attachProfile(ctx, user, &resp.User); err != nil {
		return nil, err
	}
	if err := s.attachTokenPair(ctx, user, resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	// Revoking an already-revoked or unknown token is a no-op
	if err := s.repo.RefreshToken.Revoke(ctx, refreshToken); err != nil {
		s.log.Error("Failed to revoke token on logout", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	resp := response.UserToResponse(user)
	if err := s.attachProfile(ctx, user, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *authService) attachProfile(ctx context.Context, user *entity.User, resp *response.UserResponse) error {
	switch user.Role {
	case entity.RoleSeller:
		profile, err := s.repo.Profile.FindSeller(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("find seller profile: %w", err)
		}
		resp.Seller = response.SellerProfileToResponse(profile)
	default:
		profile, err := s.repo.Profile.FindCustomer(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("find customer profile: %w", err)
		}
		resp.Customer = response.CustomerProfileToResponse(profile)
	}
	return nil
}

func (s *authService) attachTokenPair(ctx context.Context, user *entity.User, resp *response.AuthResponse) error {
	access, accessExp, err := s.tokens.CreateAccessToken(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to create access token", zap.Error(err))
		return fmt.Errorf("create access token: %w", err)
	}

	refresh, refreshExp, err := s.tokens.CreateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to create refresh token", zap.Error(err))
		return fmt.Errorf("create refresh token: %w", err)
	}

	row := &entity.RefreshToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: refreshExp,
		IsRevoked: false,
	}
	if err := s.repo.RefreshToken.Create(ctx, row); err != nil {
		s.log.Error("Failed to store refresh token", zap.Error(err))
		return fmt.Errorf("store refresh token: %w", err)
	}

	resp.AccessToken = access
	resp.AccessExpiresAt = accessExp
	resp.RefreshToken = refresh
	resp.RefreshExpiresAt = refreshExp
	return nil
}

func (s *authService) sendVerificationCode(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req := &request.SendOTPRequest{Email: email, Purpose: string(entity.OTPPurposeVerification)}
	if err := s.otp.Issue(ctx, req); err != nil {
		s.log.Error("Failed to send verification code", zap.Error(err), zap.String("email", email))
	}
}
