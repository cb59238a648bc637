package repository

import (
	"context"
	"fmt"

	"github.com/sefazor/eventhub-backend/internal/models"
	"gorm.io/gorm"
)

const (
	SortCreatedAt = "created_at"
	SortUpdatedAt = "updated_at"
	OrderAsc      = "asc"
	OrderDesc     = "desc"
)

type EventSort struct {
	By    string
	Order string
}

// orderClause only ever emits whitelisted column names.
func (s EventSort) orderClause() string {
	by := SortCreatedAt
	if s.By == SortUpdatedAt {
		by = SortUpdatedAt
	}
	order := OrderDesc
	if s.Order == OrderAsc {
		order = OrderAsc
	}
	return fmt.Sprintf("%s %s, id %s", by, order, order)
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) WithTx(tx *gorm.DB) *EventRepository {
	return &EventRepository{db: tx}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	event.IsDeleted = false
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID hides soft-deleted rows.
func (r *EventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("is_deleted = ?", false).First(&event, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &event, nil
}

// SoftDelete flags the event as deleted. Zero affected rows, because the id
// is unknown or already deleted, is ErrNotFound.
func (r *EventRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) ListActive(ctx context.Context, sort EventSort) ([]models.EventSummary, error) {
	summaries := make([]models.EventSummary, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Select("id", "event_name", "date", "time", "location", "pic").
		Where("is_deleted = ?", false).
		Order(sort.orderClause()).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
