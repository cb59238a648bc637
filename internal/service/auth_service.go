package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/internal/repository"
	"github.com/sefazor/eventhub-backend/pkg/bcrypt"
	"github.com/sefazor/eventhub-backend/pkg/database"
	jwtPkg "github.com/sefazor/eventhub-backend/pkg/jwt"
	"github.com/sefazor/eventhub-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Mailer sends the optional welcome mail after signup.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
}

type AuthService struct {
	db        *gorm.DB
	userRepo  *repository.UserRepository
	tokens    *jwtPkg.Manager
	validator *utils.Validator
	mailer    Mailer
	log       *zap.Logger
}

// NewAuthService wires the signup/signin flow. mailer may be nil.
func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	tokens *jwtPkg.Manager,
	validator *utils.Validator,
	mailer Mailer,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		db:        db,
		userRepo:  userRepo,
		tokens:    tokens,
		validator: validator,
		mailer:    mailer,
		log:       log.Named("auth"),
	}
}

// Register creates the user and returns an access token for it. A taken
// account fails with ErrDuplicateAccount before anything is written.
func (s *AuthService) Register(ctx context.Context, req models.CreateUserRequest) (string, error) {
	exists, err := s.userRepo.AccountExists(ctx, req.Account)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if exists {
		return "", ErrDuplicateAccount
	}

	// Şifreyi hashle
	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Account:  req.Account,
		Password: hashedPassword,
		Name:     req.Name,
		Phone:    req.Phone,
	}

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.userRepo.WithTx(tx).Create(ctx, user)
	})
	if errors.Is(err, repository.ErrDuplicateAccount) {
		return "", ErrDuplicateAccount
	}
	if err != nil {
		s.log.Error("create user failed", zap.String("account", req.Account), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	s.sendWelcome(ctx, user)

	return s.tokens.Issue(user.Account, s.tokens.TTL())
}

// SignIn checks the credentials and returns a fresh access token. Unknown
// accounts and wrong passwords fail the same way.
func (s *AuthService) SignIn(ctx context.Context, account, password string) (string, error) {
	user, err := s.userRepo.GetByAccount(ctx, account)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrWrongCredentials
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if !bcrypt.CheckPassword(password, user.Password) {
		s.log.Debug("sign in rejected", zap.Uint("user_id", user.ID))
		return "", ErrWrongCredentials
	}

	return s.tokens.Issue(user.Account, s.tokens.TTL())
}

// ResolveUser maps a bearer token to its stored user. A bad token and a token
// for an account that no longer exists both yield ErrUnauthenticated.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	account, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByAccount(ctx, account)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return user, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, user *models.User) {
	if s.mailer == nil || s.validator.Var(user.Account, "email") != nil {
		return
	}
	if err := s.mailer.SendWelcomeEmail(ctx, user.Account, user.Name); err != nil {
		s.log.Warn("welcome email failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}
}
