package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sefazor/eventhub-backend/internal/models"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth   *AuthHandler
	User   *UserHandler
	Event  *EventHandler
	Health *HealthHandler
}

type AppOptions struct {
	CORSOrigins string
	AccessLog   bool
	// Uploads registers POST /event/pic.
	Uploads bool
}

// NewFiberApp builds the HTTP application. requireAuth guards the user
// routes.
func NewFiberApp(h Handlers, requireAuth fiber.Handler, opts AppOptions, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(log),
		BodyLimit:    models.MaxPictureSize + 1<<20,
	})

	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		ExposeHeaders:    "Content-Disposition, X-Request-ID, X-Process-Time",
		AllowCredentials: origins != "*",
	}))
	if opts.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/healthz", h.Health.Check)

	// Public routes
	app.Post("/users", h.Auth.Register)
	app.Post("/auth/signin", h.Auth.SignIn)

	// Protected routes. Middleware is attached per route: a "/user" group
	// prefix would also match "/users".
	app.Get("/users/me", requireAuth, h.User.GetMyProfile)
	app.Put("/user/:id/phone", requireAuth, h.User.UpdatePhone)
	app.Put("/user/:id/password", requireAuth, h.User.ChangePassword)

	app.Post("/event", h.Event.CreateEvent)
	if opts.Uploads {
		app.Post("/event/pic", h.Event.UploadPicture)
	}
	app.Delete("/event/:id", h.Event.DeleteEvent)
	app.Get("/events", h.Event.ListEvents)
	app.Get("/events/:id", h.Event.GetEvent)

	return app
}
