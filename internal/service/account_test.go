package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairlyf/backend/internal/hash"
	"github.com/hairlyf/backend/internal/tokens"
	"github.com/hairlyf/backend/internal/transport"
)

func TestAccountService_Register_Validation(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := newAccountService(r)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{name: "missing name", req: transport.RegisterRequest{Email: "a@b.com", Password: "secret1", PhoneNumber: "1234567890"}},
		{name: "missing email", req: transport.RegisterRequest{Name: "u", Password: "secret1", PhoneNumber: "1234567890"}},
		{name: "bad email", req: transport.RegisterRequest{Name: "u", Email: "not-an-email", Password: "secret1", PhoneNumber: "1234567890"}},
		{name: "bad phone", req: transport.RegisterRequest{Name: "u", Email: "a@b.com", Password: "secret1", PhoneNumber: "12345"}},
		{name: "short password", req: transport.RegisterRequest{Name: "u", Email: "a@b.com", Password: "abc", PhoneNumber: "1234567890"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAccountService_Register_SuccessAndConflict(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := newAccountService(r)
	ctx := context.Background()

	req := transport.RegisterRequest{
		Name:        "test_user",
		Email:       "Test@Example.com",
		Password:    "secret1",
		PhoneNumber: "1234567890",
	}

	res, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.False(t, res.PendingVerification)
	assert.Equal(t, "test@example.com", res.User.Email)
	assert.True(t, res.User.IsVerified)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAccountService_Register_PendingVerification(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := newAccountService(r)
	svc.RequireEmailVerification = true
	ctx := context.Background()

	res, err := svc.Register(ctx, transport.RegisterRequest{
		Name:        "test_user",
		Email:       "pending@example.com",
		Password:    "secret1",
		PhoneNumber: "1234567890",
	})
	require.NoError(t, err)
	assert.True(t, res.PendingVerification)
	assert.Nil(t, res.User)

	// No account exists until the verification link is used.
	_, err = svc.Login(ctx, "pending@example.com", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAccountService_VerifyEmail_CreatesAccount(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := newAccountService(r)
	ctx := context.Background()

	pwHash, err := hash.HashPassword("secret1")
	require.NoError(t, err)
	token, err := tokens.SignRegistrationToken("test_user", "verify@example.com", pwHash, "1234567890", svc.JWTSecret, time.Now())
	require.NoError(t, err)

	user, err := svc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "verify@example.com", user.Email)
	assert.True(t, user.IsVerified)

	// Replaying the same link conflicts instead of creating a duplicate.
	_, err = svc.VerifyEmail(ctx, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	res, err := svc.Login(ctx, "verify@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestAccountService_VerifyEmail_BadToken(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := newAccountService(r)

	_, err := svc.VerifyEmail(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAccountService_Login(t *testing.T) {
	r, db := newTestRepo(t)
	svc := newAccountService(r)
	ctx := context.Background()

	seedUser(t, db, "login@example.com", "secret1")

	res, err := svc.Login(ctx, "login@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	claims, err := tokens.AccessClaimsFromToken(res.Token, svc.JWTSecret)
	require.NoError(t, err)
	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(tokens.AccessTokenTTL), claims.ExpiresAt.Time, time.Minute)

	_, err = svc.Login(ctx, "login@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAccountService_Login_UnverifiedForbidden(t *testing.T) {
	r, db := newTestRepo(t)
	svc := newAccountService(r)

	user := seedUser(t, db, "unverified@example.com", "secret1")
	require.NoError(t, db.Model(user).Update("is_verified", false).Error)

	_, err := svc.Login(context.Background(), "unverified@example.com", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	r, db := newTestRepo(t)
	svc := newAccountService(r)
	ctx := context.Background()

	user := seedUser(t, db, "profile@example.com", "secret1")

	name := "new_name"
	phone := "0987654321"
	updated, err := svc.UpdateProfile(ctx, user.ID, transport.UpdateProfileRequest{
		Name:        &name,
		PhoneNumber: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "new_name", updated.Name)
	assert.Equal(t, "0987654321", updated.PhoneNumber)
	assert.Equal(t, "profile@example.com", updated.Email)

	got, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new_name", got.Name)
}

func TestAccountService_UpdateProfile_EmailConflict(t *testing.T) {
	r, db := newTestRepo(t)
	svc := newAccountService(r)
	ctx := context.Background()

	seedUser(t, db, "taken@example.com", "secret1")
	user := seedUser(t, db, "mine@example.com", "secret1")

	taken := "taken@example.com"
	_, err := svc.UpdateProfile(ctx, user.ID, transport.UpdateProfileRequest{Email: &taken})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAccountService_GetProfile_NotFound(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := newAccountService(r)

	_, err := svc.GetProfile(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountService_PasswordReset_RoundTrip(t *testing.T) {
	r, db := newTestRepo(t)
	svc := newAccountService(r)
	ctx := context.Background()

	user := seedUser(t, db, "reset@example.com", "oldpassword")

	require.NoError(t, svc.ForgotPassword(ctx, "reset@example.com"))

	var stored struct{ ResetPasswordToken string }
	require.NoError(t, db.Table("users").Where("id = ?", user.ID).Take(&stored).Error)
	require.NotEmpty(t, stored.ResetPasswordToken)

	require.NoError(t, svc.ResetPassword(ctx, stored.ResetPasswordToken, "newpassword"))

	_, err := svc.Login(ctx, "reset@example.com", "oldpassword")
	require.Error(t, err)
	res, err := svc.Login(ctx, "reset@example.com", "newpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	// Token is single-use.
	err = svc.ResetPassword(ctx, stored.ResetPasswordToken, "anotherpass")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAccountService_ResetPassword_ExpiredToken(t *testing.T) {
	r, db := newTestRepo(t)
	svc := newAccountService(r)
	ctx := context.Background()

	user := seedUser(t, db, "expired@example.com", "secret1")
	require.NoError(t, r.SetResetToken(ctx, user.ID, "expired-token", time.Now().Add(-time.Minute)))

	err := svc.ResetPassword(ctx, "expired-token", "newpassword")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAccountService_ForgotPassword_UnknownEmail(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := newAccountService(r)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
