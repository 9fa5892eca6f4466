package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	event, err := h.eventService.Create(userID, &req)
	if err != nil {
		return internalError(c, "Failed to create event", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.EventEnvelope{
		Message: "Event created successfully!",
		Event:   *event,
	})
}

func (h *EventHandler) Join(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.JoinEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	event, alreadyMember, err := h.eventService.Join(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found. Check the invite code.",
			})
		case errors.Is(err, services.ErrEventExpired):
			return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrWrongEventPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "Failed to join event", err)
	}

	message := "Successfully joined the event!"
	if alreadyMember {
		message = "You have already joined this event."
	}

	return c.JSON(dto.EventEnvelope{Message: message, Event: *event})
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	events, err := h.eventService.ListForUser(userID)
	if err != nil {
		return internalError(c, "Failed to fetch events", err)
	}

	return c.JSON(dto.EventListResponse{Events: events})
}

func (h *EventHandler) Detail(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event id",
		})
	}

	detail, err := h.eventService.Detail(userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotMember):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "Failed to fetch event", err)
	}

	return c.JSON(detail)
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event id",
		})
	}

	if err := h.eventService.Delete(c.Context(), userID, eventID); err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNotCreator):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "Failed to delete event", err)
	}

	return c.JSON(fiber.Map{"message": "Event deleted successfully."})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
