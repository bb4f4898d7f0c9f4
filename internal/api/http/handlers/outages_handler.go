package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gridwatch/outage-service/internal/api/dto"
	"github.com/gridwatch/outage-service/internal/domain"
	"github.com/gridwatch/outage-service/internal/service"
)

// OutagesHandler exposes the outage lifecycle endpoints.
type OutagesHandler struct {
	outages *service.OutageService
}

// NewOutagesHandler constructs handler.
func NewOutagesHandler(outageService *service.OutageService) *OutagesHandler {
	return &OutagesHandler{outages: outageService}
}

// Report handles POST /api/outages/report.
func (h *OutagesHandler) Report(c *fiber.Ctx) error {
	var req dto.ReportOutageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Location == "" || req.Description == "" {
		return fiber.NewError(http.StatusBadRequest, "location and description required")
	}

	outage, err := h.outages.Report(c.UserContext(), service.ReportInput{
		UserID:        req.UserID,
		AreaID:        req.AreaID,
		Location:      req.Location,
		Description:   req.Description,
		Priority:      req.Priority,
		AffectedUsers: req.AffectedUsers,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "Outage reported successfully",
		"outageId": outage.ID,
	})
}

// List handles GET /api/outages/all.
func (h *OutagesHandler) List(c *fiber.Ctx) error {
	outages, err := h.outages.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OutagesFromDomain(outages))
}

// ListByArea handles GET /api/outages/area/:areaId.
func (h *OutagesHandler) ListByArea(c *fiber.Ctx) error {
	areaID, err := pathID(c, "areaId")
	if err != nil {
		return err
	}

	outages, err := h.outages.ListByArea(c.UserContext(), areaID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OutagesFromDomain(outages))
}

// ListByStatus handles GET /api/outages/status/:status.
func (h *OutagesHandler) ListByStatus(c *fiber.Ctx) error {
	status := domain.OutageStatus(c.Params("status"))

	outages, err := h.outages.ListByStatus(c.UserContext(), status)
	if err != nil {
		return err
	}
	return c.JSON(dto.OutagesFromDomain(outages))
}

// ListByUser handles GET /api/outages/user/:userId.
func (h *OutagesHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	outages, err := h.outages.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OutagesFromDomain(outages))
}

// Get handles GET /api/outages/:outageId.
func (h *OutagesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "outageId")
	if err != nil {
		return err
	}

	outage, err := h.outages.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OutageFromDomain(outage))
}

// UpdateStatus handles PUT /api/outages/:outageId/status.
func (h *OutagesHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "outageId")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	outage, err := h.outages.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Outage status updated",
		"outage":  dto.OutageFromDomain(outage),
	})
}

// Delete handles DELETE /api/outages/:outageId.
func (h *OutagesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "outageId")
	if err != nil {
		return err
	}

	if err := h.outages.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Outage deleted successfully"})
}
