package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gridwatch/outage-service/internal/service"
)

// ReportsHandler exposes read-only dashboard aggregates.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Stats handles GET /api/reports/stats.
func (h *ReportsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.reports.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// AreaStats handles GET /api/reports/areas.
func (h *ReportsHandler) AreaStats(c *fiber.Ctx) error {
	stats, err := h.reports.AreaStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
