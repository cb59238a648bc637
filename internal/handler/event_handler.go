package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/internal/service"
	"github.com/sefazor/eventhub-backend/pkg/utils"
)

type EventHandler struct {
	eventService *service.EventService
	validator    *utils.Validator
}

func NewEventHandler(eventService *service.EventService, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator,
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.Message(err)))
	}

	event, err := h.eventService.CreateEvent(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, fiber.StatusBadRequest, "Failed to create event")
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(fiber.Map{"id": event.ID}, "Event created successfully"))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	event, err := h.eventService.GetEvent(c.UserContext(), uint(eventID))
	if errors.Is(err, service.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Event not found"))
	}
	if err != nil {
		return writeError(c, err, fiber.StatusInternalServerError, "Failed to load event")
	}

	return c.JSON(models.SuccessResponse(event, ""))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	err = h.eventService.DeleteEvent(c.UserContext(), uint(eventID))
	if errors.Is(err, service.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Event not found"))
	}
	if err != nil {
		return writeError(c, err, fiber.StatusInternalServerError, "Failed to delete event")
	}

	return c.JSON(models.SuccessResponse(nil, "Event successfully deleted"))
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	var query models.EventListQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid query parameters"))
	}
	if err := h.validator.Struct(query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.Message(err)))
	}

	events, err := h.eventService.ListEvents(c.UserContext(), query)
	if err != nil {
		return writeError(c, err, fiber.StatusInternalServerError, "Failed to list events")
	}

	return c.JSON(models.SuccessResponse(events, ""))
}

// UploadPicture accepts a multipart "pic" file and returns the URL to use as
// the event's pic.
func (h *EventHandler) UploadPicture(c *fiber.Ctx) error {
	file, err := c.FormFile("pic")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("pic file is required"))
	}

	upload := models.PictureUpload{
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        file.Size,
	}
	if err := h.validator.Struct(upload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.Message(err)))
	}

	url, err := h.eventService.UploadPicture(c.UserContext(), file)
	if err != nil {
		return writeError(c, err, fiber.StatusInternalServerError, "Failed to upload picture")
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(models.PictureResponse{Pic: url}, "Picture uploaded successfully"))
}
