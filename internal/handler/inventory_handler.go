package handler

import (
	"errors"
	"time"

	"go-coffee-warehouse/internal/ledger"
	"go-coffee-warehouse/internal/model"
	"go-coffee-warehouse/internal/repository"
	"go-coffee-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// currentUser pulls the authenticated account from the context (set by RequireAuth)
func currentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("user").(*model.User)
	return user
}

// CreateTransaction records a stock movement
// POST /api/v1/transactions
func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := currentUser(c)
	if actor == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	tx, err := h.service.RecordTransaction(&req, actor)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidQuantity):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ledger.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ledger.ErrInsufficientStock):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRoleNotPermitted):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

// GetProducts returns the available catalog (quantity > 0)
// GET /api/v1/products
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAvailableProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// GetTransactions returns the ledger most-recent-first, optionally filtered
// by staff member and date range
// GET /api/v1/transactions?user_id=&from=&to=
func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	var filter repository.LedgerFilter

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid user_id filter"})
		}
		filter.UserID = &userID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid from filter, use RFC3339"})
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid to filter, use RFC3339"})
		}
		filter.To = &to
	}

	transactions, err := h.service.GetTransactions(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

// GetTransaction returns a single ledger entry
// GET /api/v1/transactions/:id
func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.service.GetTransactionByID(txID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(tx)
}
