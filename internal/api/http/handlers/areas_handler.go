package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gridwatch/outage-service/internal/api/dto"
	"github.com/gridwatch/outage-service/internal/service"
)

// AreasHandler exposes the area registry endpoints.
type AreasHandler struct {
	areas *service.AreaService
}

// NewAreasHandler constructs handler.
func NewAreasHandler(areaService *service.AreaService) *AreasHandler {
	return &AreasHandler{areas: areaService}
}

// Create handles POST /api/areas/create.
func (h *AreasHandler) Create(c *fiber.Ctx) error {
	var req dto.AreaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	area, err := h.areas.Create(c.UserContext(), service.AreaInput{
		Name:       req.AreaName,
		Region:     req.Region,
		TotalUsers: req.TotalUsers,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Area created successfully",
		"areaId":  area.ID,
	})
}

// List handles GET /api/areas/all.
func (h *AreasHandler) List(c *fiber.Ctx) error {
	areas, err := h.areas.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.AreasFromDomain(areas))
}

// Get handles GET /api/areas/:areaId.
func (h *AreasHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "areaId")
	if err != nil {
		return err
	}

	area, err := h.areas.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.AreaFromDomain(area))
}

// Update handles PUT /api/areas/:areaId.
func (h *AreasHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "areaId")
	if err != nil {
		return err
	}

	var req dto.AreaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	area, err := h.areas.Update(c.UserContext(), id, service.AreaInput{
		Name:       req.AreaName,
		Region:     req.Region,
		TotalUsers: req.TotalUsers,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Area updated successfully",
		"area":    dto.AreaFromDomain(area),
	})
}

// Delete handles DELETE /api/areas/:areaId.
func (h *AreasHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "areaId")
	if err != nil {
		return err
	}

	if err := h.areas.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Area deleted successfully"})
}

// pathID parses an integer path parameter.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
