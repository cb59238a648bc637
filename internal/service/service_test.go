package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/sefazor/eventhub-backend/internal/repository"
	"github.com/sefazor/eventhub-backend/internal/testutil"
	jwtPkg "github.com/sefazor/eventhub-backend/pkg/jwt"
	"github.com/sefazor/eventhub-backend/pkg/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendWelcomeEmail(_ context.Context, to, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

type fakeStorage struct {
	objects map[string][]byte
	err     error
}

func (s *fakeStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if s.err != nil {
		return s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fixture struct {
	db       *gorm.DB
	userRepo *repository.UserRepository
	tokens   *jwtPkg.Manager
	mailer   *fakeMailer
	storage  *fakeStorage
	auth     *AuthService
	users    *UserService
	events   *EventService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	log := zaptest.NewLogger(t)
	tokens, err := jwtPkg.NewManager("test-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	f := &fixture{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		tokens:   tokens,
		mailer:   &fakeMailer{},
		storage:  &fakeStorage{},
	}
	f.auth = NewAuthService(db, f.userRepo, tokens, utils.NewValidator(), f.mailer, log)
	f.users = NewUserService(db, f.userRepo, log)
	f.events = NewEventService(db, repository.NewEventRepository(db), f.storage, log)
	return f
}

// closeDB makes every later query fail.
func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func fileHeader(t *testing.T, field, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

var errBoom = errors.New("boom")
