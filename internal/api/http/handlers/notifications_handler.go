package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gridwatch/outage-service/internal/api/dto"
	"github.com/gridwatch/outage-service/internal/service"
)

// NotificationsHandler exposes notification endpoints.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// Send handles POST /api/notifications/send.
func (h *NotificationsHandler) Send(c *fiber.Ctx) error {
	var req dto.SendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	notification, err := h.notifications.Send(c.UserContext(), req.OutageID, req.Message)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":        "Notification sent",
		"notificationId": notification.ID,
	})
}

// ListAll handles GET /api/notifications/all.
func (h *NotificationsHandler) ListAll(c *fiber.Ctx) error {
	notifications, err := h.notifications.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NotificationsFromDomain(notifications))
}

// ListByOutage handles GET /api/notifications/outage/:outageId.
func (h *NotificationsHandler) ListByOutage(c *fiber.Ctx) error {
	outageID, err := pathID(c, "outageId")
	if err != nil {
		return err
	}

	notifications, err := h.notifications.ListByOutage(c.UserContext(), outageID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NotificationsFromDomain(notifications))
}
