package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/events"
	"github.com/hairlyf/backend/internal/hash"
	"github.com/hairlyf/backend/internal/logging"
	"github.com/hairlyf/backend/internal/mail"
	"github.com/hairlyf/backend/internal/models"
	"github.com/hairlyf/backend/internal/repo"
	"github.com/hairlyf/backend/internal/tokens"
	"github.com/hairlyf/backend/internal/transport"
)

const resetTokenTTL = time.Hour

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

type AccountService struct {
	Repo        *repo.GormRepo
	Mailer      *mail.Mailer
	Producer    *events.Producer
	JWTSecret   []byte
	FrontendURL string

	// Registration either creates the account immediately or holds it in a
	// short-lived signed token until the email link is clicked.
	RequireEmailVerification bool
	MinPasswordLength        int
}

type RegisterResult struct {
	User                *models.User
	PendingVerification bool
}

type LoginResult struct {
	User  *models.User
	Token string
}

func (s *AccountService) Register(ctx context.Context, req transport.RegisterRequest) (*RegisterResult, error) {
	l := logging.FromContext(ctx).With("svc", "account.register")

	if req.Name == "" || req.Email == "" || req.Password == "" || req.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if !phoneRegex.MatchString(req.PhoneNumber) {
		return nil, fmt.Errorf("%w: phone number must be 10 digits", ErrValidation)
	}
	if len(req.Password) < s.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, s.MinPasswordLength)
	}

	email := strings.ToLower(req.Email)
	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	if s.RequireEmailVerification {
		token, err := tokens.SignRegistrationToken(req.Name, email, pwHash, req.PhoneNumber, s.JWTSecret, time.Now())
		if err != nil {
			return nil, err
		}
		link := fmt.Sprintf("%s/verify/%s", s.FrontendURL, token)
		s.Mailer.SendVerificationEmail(email, link)

		l.Info("register_pending_verification", "email", email)
		return &RegisterResult{PendingVerification: true}, nil
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: pwHash,
		PhoneNumber:  req.PhoneNumber,
		IsVerified:   true,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("register_success", "user_id", user.ID)
	return &RegisterResult{User: &user}, nil
}

func (s *AccountService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "account.verify_email")

	claims, err := tokens.RegistrationClaimsFromToken(token, s.JWTSecret)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("%w: invalid or expired token", ErrValidation)
	}

	user := models.User{
		Name:         claims.Name,
		Email:        claims.Email,
		PasswordHash: claims.PasswordHash,
		PhoneNumber:  claims.PhoneNumber,
		IsVerified:   true,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fmt.Errorf("%w: user already verified", ErrConflict)
		}
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("verify_email_success", "user_id", user.ID)
	return &user, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "account.login")

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if !user.IsVerified {
		return nil, fmt.Errorf("%w: please verify your email before logging in", ErrForbidden)
	}

	token, err := tokens.SignAccessToken(user.ID, user.IsAdmin, s.JWTSecret, time.Now())
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{User: user, Token: token}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, req transport.UpdateProfileRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "account.update_profile")

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if !emailRegex.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
		}
		if email != user.Email {
			if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
				return nil, fmt.Errorf("%w: email already in use", ErrConflict)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}
	if req.PhoneNumber != nil {
		if !phoneRegex.MatchString(*req.PhoneNumber) {
			return nil, fmt.Errorf("%w: phone number must be 10 digits", ErrValidation)
		}
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Password != nil {
		if len(*req.Password) < s.MinPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, s.MinPasswordLength)
		}
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = pwHash
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	l.Info("update_profile_success", "user_id", user.ID)
	return user, nil
}

func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "account.forgot_password")

	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return err
	}

	token := uuid.NewString()
	if err := s.Repo.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.FrontendURL, token)
	s.Mailer.SendPasswordResetEmail(user.Email, link)

	l.Info("forgot_password_email_sent", "user_id", user.ID)
	return nil
}

func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "account.reset_password")

	if token == "" {
		return fmt.Errorf("%w: token is required", ErrValidation)
	}
	if len(newPassword) < s.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, s.MinPasswordLength)
	}

	user, err := s.Repo.GetUserByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid or expired token", ErrValidation)
		}
		return err
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, user.ID, pwHash); err != nil {
		return err
	}

	l.Info("reset_password_success", "user_id", user.ID)
	return nil
}

func (s *AccountService) publish(ctx context.Context, topic string, key uint, event map[string]any) {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pctx, topic, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
