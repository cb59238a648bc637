package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventhub-backend/internal/handler"
	"github.com/sefazor/eventhub-backend/internal/middleware"
	"github.com/sefazor/eventhub-backend/internal/repository"
	"github.com/sefazor/eventhub-backend/internal/service"
	"github.com/sefazor/eventhub-backend/internal/testutil"
	jwtPkg "github.com/sefazor/eventhub-backend/pkg/jwt"
	"github.com/sefazor/eventhub-backend/pkg/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type memoryStorage struct {
	keys []string
}

func (s *memoryStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return err
	}
	s.keys = append(s.keys, key)
	return nil
}

func (s *memoryStorage) PublicURL(key string) string { return "https://cdn.example.com/" + key }

type testApp struct {
	app     *fiber.App
	db      *gorm.DB
	storage *memoryStorage
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewDB(t)
	log := zaptest.NewLogger(t)
	validator := utils.NewValidator()
	tokens, err := jwtPkg.NewManager("handler-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	store := &memoryStorage{}

	authService := service.NewAuthService(db, userRepo, tokens, validator, nil, log)
	userService := service.NewUserService(db, userRepo, log)
	eventService := service.NewEventService(db, repository.NewEventRepository(db), store, log)

	app := handler.NewFiberApp(handler.Handlers{
		Auth:   handler.NewAuthHandler(authService, validator),
		User:   handler.NewUserHandler(userService, validator),
		Event:  handler.NewEventHandler(eventService, validator),
		Health: handler.NewHealthHandler(db),
	}, middleware.AuthMiddleware(authService, log), handler.AppOptions{Uploads: true}, log)

	return &testApp{app: app, db: db, storage: store}
}

func (a *testApp) do(t *testing.T, req *http.Request) (int, envelope, http.Header) {
	t.Helper()

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body, resp.Header
}

func (a *testApp) doJSON(t *testing.T, method, target, token string, payload any) (int, envelope, http.Header) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return a.do(t, req)
}

func (a *testApp) signIn(t *testing.T, account, password string) (int, envelope) {
	t.Helper()

	form := url.Values{"username": {account}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	status, body, _ := a.do(t, req)
	return status, body
}

// signUp registers the account and returns its access token.
func (a *testApp) signUp(t *testing.T, account, password string) string {
	t.Helper()

	status, body, _ := a.doJSON(t, http.MethodPost, "/users", "", map[string]string{
		"account":  account,
		"password": password,
		"name":     "Test User",
		"phone":    "0900000000",
	})
	require.Equal(t, http.StatusCreated, status, body.Error)
	return decode[tokenData](t, body).AccessToken
}

type tokenData struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func decode[T any](t *testing.T, body envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body.Data, &out))
	return out
}

func multipartRequest(t *testing.T, target, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}
