package service

import (
	"context"
	"strings"
	"testing"

	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func eventRequest(name string) models.EventRequest {
	return models.EventRequest{
		EventName:   name,
		Description: "An evening of music",
		Date:        "2024-08-01",
		Time:        "19:30",
		Location:    "Taipei Arena",
		Address:     "No. 2, Sec. 4, Nanjing E. Rd.",
		Organizer:   "Live Nation",
		SaleTime:    "2024-06-01 12:00",
		OnSale:      true,
		Price:       "800, 1800",
		Category:    "concert",
	}
}

func TestEventLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.events.CreateEvent(ctx, eventRequest("show"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := f.events.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "show", got.EventName)
	assert.Equal(t, "An evening of music", got.Description)
	assert.Equal(t, "Live Nation", got.Organizer)
	assert.True(t, got.OnSale)
	assert.False(t, got.IsDeleted)

	list, err := f.events.ListEvents(ctx, models.EventListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.events.DeleteEvent(ctx, created.ID))

	_, err = f.events.GetEvent(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.events.DeleteEvent(ctx, created.ID), ErrNotFound)

	list, err = f.events.ListEvents(ctx, models.EventListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEventNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.events.GetEvent(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.events.DeleteEvent(ctx, 7), ErrNotFound)
}

func TestEventStorageFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	closeDB(t, f.db)

	_, err := f.events.CreateEvent(ctx, eventRequest("show"))
	assert.ErrorIs(t, err, ErrStorage)

	_, err = f.events.ListEvents(ctx, models.EventListQuery{})
	assert.ErrorIs(t, err, ErrStorage)

	err = f.events.DeleteEvent(ctx, 1)
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUploadPicture(t *testing.T) {
	f := newFixture(t)
	file := fileHeader(t, "pic", "Poster.JPG", "image/jpeg", []byte("jpeg-bytes"))

	url, err := f.events.UploadPicture(context.Background(), file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/events/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	require.Len(t, f.storage.objects, 1)
	for key, data := range f.storage.objects {
		assert.Equal(t, "https://cdn.example.com/"+key, url)
		assert.Equal(t, []byte("jpeg-bytes"), data)
	}
}

func TestUploadPictureFailures(t *testing.T) {
	f := newFixture(t)
	file := fileHeader(t, "pic", "poster.png", "image/png", []byte("png"))

	f.storage.err = errBoom
	_, err := f.events.UploadPicture(context.Background(), file)
	assert.ErrorIs(t, err, ErrStorage)

	disabled := NewEventService(f.db, repository.NewEventRepository(f.db), nil, zaptest.NewLogger(t))
	_, err = disabled.UploadPicture(context.Background(), file)
	assert.ErrorIs(t, err, ErrUploadDisabled)
}
