package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/internal/repository"
	"github.com/sefazor/eventhub-backend/pkg/bcrypt"
	"github.com/sefazor/eventhub-backend/pkg/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	userRepo *repository.UserRepository
	log      *zap.Logger
}

func NewUserService(db *gorm.DB, userRepo *repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{
		db:       db,
		userRepo: userRepo,
		log:      log.Named("user"),
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return user, nil
}

func (s *UserService) UpdatePhone(ctx context.Context, user *models.User, phone string) (*models.User, error) {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.userRepo.WithTx(tx).UpdatePhone(ctx, user, phone)
	})
	if err != nil {
		s.log.Error("update phone failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	user.Phone = phone
	return user, nil
}

// UpdatePassword replaces the stored hash once currentPassword checks out.
// The check and the write are not locked against each other; the database
// isolation level decides concurrent changes.
func (s *UserService) UpdatePassword(ctx context.Context, user *models.User, currentPassword, newPassword string) (*models.User, error) {
	if !bcrypt.CheckPassword(currentPassword, user.Password) {
		return nil, ErrWrongPassword
	}

	hashedPassword, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.userRepo.WithTx(tx).UpdatePassword(ctx, user, hashedPassword)
	})
	if err != nil {
		s.log.Error("update password failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	user.Password = hashedPassword
	s.log.Info("password changed", zap.Uint("user_id", user.ID))
	return user, nil
}
