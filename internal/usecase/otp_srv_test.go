package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"watch-store/internal/data/entity"
	"watch-store/internal/data/repository"
	"watch-store/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var codePattern = regexp.MustCompile(`\d{6}`)

func newOTPFixture(t *testing.T) (OTPService, *repository.Repository, *fakeMailer) {
	t.Helper()

	repo := newFakeRepo()
	mail := &fakeMailer{}
	svc := NewOTPService(repo, unreachableRedis(), mail, testConfig(), zap.NewNop())

	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:     "amira",
		Email:        "amira@example.com",
		PasswordHash: "irrelevant",
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))

	return svc, repo, mail
}

// issueCode requests a code and reads it back out of the captured email
func issueCode(t *testing.T, svc OTPService, mail *fakeMailer, purpose string) string {
	t.Helper()

	err := svc.Issue(context.Background(), &request.SendOTPRequest{
		Email:   "amira@example.com",
		Purpose: purpose,
	})
	require.NoError(t, err)

	msg, ok := mail.last()
	require.True(t, ok)
	require.Equal(t, "amira@example.com", msg.To)

	code := codePattern.FindString(msg.Body)
	require.Len(t, code, 6)
	return code
}

func TestIssueUnknownEmail(t *testing.T) {
	svc, _, _ := newOTPFixture(t)

	err := svc.Issue(context.Background(), &request.SendOTPRequest{
		Email:   "nobody@example.com",
		Purpose: "verification",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIssueAlreadyVerified(t *testing.T) {
	svc, repo, _ := newOTPFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.User.MarkEmailVerified(ctx, "amira@example.com"))

	err := svc.Issue(ctx, &request.SendOTPRequest{Email: "amira@example.com", Purpose: "verification"})
	require.ErrorIs(t, err, ErrAlreadyVerified)

	// Other purposes are unaffected by verification state
	err = svc.Issue(ctx, &request.SendOTPRequest{Email: "amira@example.com", Purpose: "password_reset"})
	require.NoError(t, err)
}

func TestIssueSurfacesMailFailure(t *testing.T) {
	svc, _, mail := newOTPFixture(t)
	mail.fail = errors.New("smtp unreachable")

	err := svc.Issue(context.Background(), &request.SendOTPRequest{
		Email:   "amira@example.com",
		Purpose: "verification",
	})
	require.ErrorIs(t, err, ErrMailDelivery)
}

func TestVerifyMarksEmailAndConsumesCode(t *testing.T) {
	svc, repo, mail := newOTPFixture(t)
	ctx := context.Background()

	code := issueCode(t, svc, mail, "verification")

	err := svc.Verify(ctx, &request.VerifyOTPRequest{
		Email:   "amira@example.com",
		Purpose: "verification",
		Code:    code,
	})
	require.NoError(t, err)

	user, err := repo.User.FindByEmail(ctx, "amira@example.com")
	require.NoError(t, err)
	require.True(t, user.EmailVerified)

	// Single use
	err = svc.Verify(ctx, &request.VerifyOTPRequest{
		Email:   "amira@example.com",
		Purpose: "verification",
		Code:    code,
	})
	require.ErrorIs(t, err, ErrOTPInvalid)
}

func TestVerifyWrongCodeBurnsAfterMaxAttempts(t *testing.T) {
	svc, _, mail := newOTPFixture(t)
	ctx := context.Background()

	code := issueCode(t, svc, mail, "verification")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	attempt := &request.VerifyOTPRequest{
		Email:   "amira@example.com",
		Purpose: "verification",
		Code:    wrong,
	}

	require.ErrorIs(t, svc.Verify(ctx, attempt), ErrOTPInvalid)
	require.ErrorIs(t, svc.Verify(ctx, attempt), ErrOTPInvalid)
	require.ErrorIs(t, svc.Verify(ctx, attempt), ErrOTPTooManyAttempts)

	// The burned code no longer works even when correct
	attempt.Code = code
	require.ErrorIs(t, svc.Verify(ctx, attempt), ErrOTPInvalid)
}

func TestVerifyExpiredCode(t *testing.T) {
	svc, repo, _ := newOTPFixture(t)
	ctx := context.Background()

	expired := &entity.OTP{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)},
		Email:      "amira@example.com",
		CodeHash:   "whatever",
		Purpose:    entity.OTPPurposeVerification,
		ExpiresAt:  time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.OTP.Replace(ctx, expired))

	err := svc.Verify(ctx, &request.VerifyOTPRequest{
		Email:   "amira@example.com",
		Purpose: "verification",
		Code:    "123456",
	})
	require.ErrorIs(t, err, ErrOTPInvalid)

	// The expired row was cleaned up on the way out
	otp, err := repo.OTP.FindByEmailPurpose(ctx, "amira@example.com", entity.OTPPurposeVerification)
	require.NoError(t, err)
	require.Nil(t, otp)
}

func TestReissueReplacesPreviousCode(t *testing.T) {
	svc, _, mail := newOTPFixture(t)
	ctx := context.Background()

	first := issueCode(t, svc, mail, "password_reset")
	second := issueCode(t, svc, mail, "password_reset")

	if first != second {
		err := svc.Verify(ctx, &request.VerifyOTPRequest{
			Email:   "amira@example.com",
			Purpose: "password_reset",
			Code:    first,
		})
		require.ErrorIs(t, err, ErrOTPInvalid)
	}

	err := svc.Verify(ctx, &request.VerifyOTPRequest{
		Email:   "amira@example.com",
		Purpose: "password_reset",
		Code:    second,
	})
	require.NoError(t, err)
}

func TestCancelDropsPendingCode(t *testing.T) {
	svc, _, mail := newOTPFixture(t)
	ctx := context.Background()

	code := issueCode(t, svc, mail, "login")

	err := svc.Cancel(ctx, &request.CancelOTPRequest{Email: "amira@example.com", Purpose: "login"})
	require.NoError(t, err)

	err = svc.Verify(ctx, &request.VerifyOTPRequest{
		Email:   "amira@example.com",
		Purpose: "login",
		Code:    code,
	})
	require.ErrorIs(t, err, ErrOTPInvalid)
}

func TestSweepRemovesExpiredCredentials(t *testing.T) {
	svc, repo, _ := newOTPFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.OTP.Replace(ctx, &entity.OTP{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)},
		Email:      "amira@example.com",
		CodeHash:   "stale",
		Purpose:    entity.OTPPurposeLogin,
		ExpiresAt:  time.Now().Add(-time.Minute),
	}))
	require.NoError(t, repo.RefreshToken.Create(ctx, &entity.RefreshToken{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)},
		UserID:     uuid.New(),
		Token:      "stale-token",
		ExpiresAt:  time.Now().Add(-time.Minute),
	}))

	swept, err := svc.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), swept)

	swept, err = svc.Sweep(ctx)
	require.NoError(t, err)
	require.Zero(t, swept)
}
