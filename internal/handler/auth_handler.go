package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/internal/service"
	"github.com/sefazor/eventhub-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// Register handles POST /users.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.Message(err)))
	}

	token, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, fiber.StatusBadRequest, "Failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(models.NewTokenResponse(token), "User registered successfully"))
}

// SignIn handles POST /auth/signin with an OAuth2 password form.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req models.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.Message(err)))
	}

	token, err := h.authService.SignIn(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err, fiber.StatusBadRequest, "Sign in failed")
	}

	return c.JSON(models.SuccessResponse(models.NewTokenResponse(token), "Login successful"))
}
