package handler

import (
	"strconv"
	"time"

	"go-coffee-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns per-day import/export data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetOverviewStats returns overview statistics
func (h *DashboardHandler) GetOverviewStats(c *fiber.Ctx) error {
	stats, err := h.service.GetOverviewStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}

// GetTradeSummary returns import/export value over a range
// Query params: range (7d, 1m, 3m, 6m, 12m)
func (h *DashboardHandler) GetTradeSummary(c *fiber.Ctx) error {
	rangeParam := c.Query("range", "7d")
	now := time.Now()
	var startDate time.Time

	switch rangeParam {
	case "7d":
		startDate = now.AddDate(0, 0, -7)
	case "1m":
		startDate = now.AddDate(0, -1, 0)
	case "3m":
		startDate = now.AddDate(0, -3, 0)
	case "6m":
		startDate = now.AddDate(0, -6, 0)
	case "12m":
		startDate = now.AddDate(0, -12, 0)
	default:
		startDate = now.AddDate(0, 0, -7)
	}

	summary, err := h.service.GetTradeSummary(startDate, now)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(summary)
}
