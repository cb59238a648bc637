package repository

import (
	"context"

	"github.com/sefazor/eventhub-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository whose queries run inside tx.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) GetByAccount(ctx context.Context, account string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("account = ?", account).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) AccountExists(ctx context.Context, account string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("account = ?", account).Count(&count).Error
	return count > 0, err
}

// Create inserts user. The unique index on account decides races; a
// violation is reported as ErrDuplicateAccount.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if isUniqueViolation(err) {
		return ErrDuplicateAccount
	}
	return err
}

func (r *UserRepository) UpdatePhone(ctx context.Context, user *models.User, phone string) error {
	return r.db.WithContext(ctx).Model(user).Update("phone", phone).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, user *models.User, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(user).Update("password", hashedPassword).Error
}
