package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/internal/repository"
	"github.com/sefazor/eventhub-backend/pkg/database"
	"github.com/sefazor/eventhub-backend/pkg/storage"
	"github.com/sefazor/eventhub-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EventService struct {
	db        *gorm.DB
	eventRepo *repository.EventRepository
	pictures  storage.StorageService
	log       *zap.Logger
}

// NewEventService wires event persistence. pictures may be nil, in which
// case UploadPicture fails with ErrUploadDisabled.
func NewEventService(db *gorm.DB, eventRepo *repository.EventRepository, pictures storage.StorageService, log *zap.Logger) *EventService {
	return &EventService{
		db:        db,
		eventRepo: eventRepo,
		pictures:  pictures,
		log:       log.Named("event"),
	}
}

// CreateEvent inserts the event in its own transaction; on failure nothing
// is left behind.
func (s *EventService) CreateEvent(ctx context.Context, req models.EventRequest) (*models.Event, error) {
	event := req.ToEvent()

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.eventRepo.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		s.log.Error("create event failed", zap.String("event_name", req.EventName), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.log.Info("event created", zap.Uint("event_id", event.ID))
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return event, nil
}

// DeleteEvent soft-deletes the event. Deleting an unknown or already deleted
// event is ErrNotFound.
func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.eventRepo.WithTx(tx).SoftDelete(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		s.log.Error("delete event failed", zap.Uint("event_id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.log.Info("event deleted", zap.Uint("event_id", id))
	return nil
}

func (s *EventService) ListEvents(ctx context.Context, query models.EventListQuery) ([]models.EventSummary, error) {
	events, err := s.eventRepo.ListActive(ctx, repository.EventSort{By: query.SortBy, Order: query.OrderBy})
	if err != nil {
		s.log.Error("list events failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return events, nil
}

// UploadPicture stores an event picture and returns its public URL, to be
// sent back as the event's pic.
func (s *EventService) UploadPicture(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s.pictures == nil {
		return "", ErrUploadDisabled
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("events/%s%s", utils.GenerateRandomString(20), ext)

	if err := s.pictures.Upload(ctx, key, src, file.Size, file.Header.Get("Content-Type")); err != nil {
		s.log.Error("picture upload failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.log.Info("picture uploaded", zap.String("key", key), zap.Int64("size", file.Size))
	return s.pictures.PublicURL(key), nil
}
