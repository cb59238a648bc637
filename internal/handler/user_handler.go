package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventhub-backend/internal/middleware"
	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/internal/service"
	"github.com/sefazor/eventhub-backend/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// GetMyProfile handles GET /users/me with a fresh read of the caller's row.
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, service.ErrUnauthenticated, fiber.StatusUnauthorized, "")
	}

	user, err := h.userService.GetUserByID(c.UserContext(), current.ID)
	if errors.Is(err, service.ErrNotFound) {
		return writeError(c, service.ErrUnauthenticated, fiber.StatusUnauthorized, "")
	}
	if err != nil {
		return writeError(c, err, fiber.StatusInternalServerError, "Failed to load profile")
	}
	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) UpdatePhone(c *fiber.Ctx) error {
	user, err := h.owner(c)
	if err != nil {
		return err
	}

	var req models.UpdatePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.Message(err)))
	}

	if _, err := h.userService.UpdatePhone(c.UserContext(), user, req.Phone); err != nil {
		return writeError(c, err, fiber.StatusBadRequest, "Failed to update phone")
	}

	return c.JSON(models.SuccessResponse(nil, "Phone updated successfully"))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	user, err := h.owner(c)
	if err != nil {
		return err
	}

	var req models.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.Message(err)))
	}

	if _, err := h.userService.UpdatePassword(c.UserContext(), user, req.CurrentPassword, req.NewPassword); err != nil {
		return writeError(c, err, fiber.StatusBadRequest, "Failed to update password")
	}

	return c.JSON(models.SuccessResponse(nil, "Password changed successfully"))
}

// owner returns the authenticated user when it is the one named by the :id
// path parameter. Failures are *fiber.Error values for ErrorHandler.
func (h *UserHandler) owner(c *fiber.Ctx) (*models.User, error) {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	user, ok := middleware.CurrentUser(c)
	if !ok || user.ID != uint(userID) {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Could not validate credentials")
	}
	return user, nil
}
