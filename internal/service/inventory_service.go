package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-coffee-warehouse/internal/ledger"
	"go-coffee-warehouse/internal/model"
	"go-coffee-warehouse/internal/repository"
	"go-coffee-warehouse/internal/ws"
	"go-coffee-warehouse/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRoleNotPermitted    = errors.New("role is not permitted to record this transaction type")
	ErrProductNameRequired = errors.New("product name is required for import")
)

// TransactionRequest is a movement intent from the API layer. ProductName
// drives imports (find-or-create), ProductID drives exports. Price is only
// read for imports.
type TransactionRequest struct {
	Type        model.TransactionType `json:"type" validate:"required,oneof=import export"`
	ProductID   uuid.UUID             `json:"product_id"`
	ProductName string                `json:"product_name"`
	Quantity    int                   `json:"quantity"`
	Price       int64                 `json:"price" validate:"gte=0"`
}

type InventoryService interface {
	RecordTransaction(req *TransactionRequest, actor *model.User) (*model.Transaction, error)
	GetAvailableProducts() ([]model.Product, error)
	GetTransactions(filter repository.LedgerFilter) ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		wsHub:           hub,
	}
}

// RecordTransaction is the single authoritative write path for stock
// movements. The affected product row is locked (FOR UPDATE) before the
// reconciler decides, and the ledger append plus the catalog mutation commit
// in the same DB transaction. Concurrent movements against one product
// therefore serialize in lock-arrival order instead of racing read-then-write.
func (s *inventoryService) RecordTransaction(req *TransactionRequest, actor *model.User) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if req.Type == model.TxImport && !actor.Role.CanImport() {
		return nil, ErrRoleNotPermitted
	}
	if req.Type == model.TxExport && !actor.Role.CanExport() {
		return nil, ErrRoleNotPermitted
	}
	if req.Type == model.TxImport && req.ProductName == "" {
		return nil, ErrProductNameRequired
	}

	var result *ledger.Result
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var snapshot []model.Product
		var err error
		if req.Type == model.TxImport {
			snapshot, err = s.productRepo.LockByName(tx, req.ProductName)
		} else {
			snapshot, err = s.productRepo.LockByID(tx, req.ProductID)
		}
		if err != nil {
			return err
		}

		result, err = ledger.Reconcile(ledger.Request{
			Type:        req.Type,
			ProductID:   req.ProductID,
			ProductName: req.ProductName,
			Quantity:    req.Quantity,
			Price:       req.Price,
		}, snapshot, ledger.Actor{ID: actor.ID, Name: actor.Name})
		if err != nil {
			return err
		}

		if err := s.transactionRepo.Append(tx, &result.Transaction); err != nil {
			return err
		}

		switch result.Mutation.Op {
		case ledger.OpInsert:
			return s.productRepo.Insert(tx, &result.Mutation.Product)
		case ledger.OpUpdate:
			p := result.Mutation.Product
			return s.productRepo.UpdateStock(tx, p.ID, p.Quantity, p.Price)
		case ledger.OpDelete:
			return s.productRepo.Remove(tx, result.Mutation.Product.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastTransaction(result, actor)

	return &result.Transaction, nil
}

func (s *inventoryService) broadcastTransaction(result *ledger.Result, actor *model.User) {
	go func() {
		verb := "imported"
		if result.Transaction.Type == model.TxExport {
			verb = "exported"
		}

		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "transaction_recorded",
			"transaction": map[string]interface{}{
				"id":           result.Transaction.ID,
				"type":         result.Transaction.Type,
				"product_id":   result.Transaction.ProductID,
				"product_name": result.Transaction.ProductName,
				"quantity":     result.Transaction.Quantity,
				"new_quantity": result.Mutation.Product.Quantity,
			},
			"user": map[string]interface{}{
				"id":   actor.ID,
				"name": actor.Name,
			},
			"message": fmt.Sprintf("%s %s %d units of '%s'", actor.Name, verb, result.Transaction.Quantity, result.Transaction.ProductName),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}

func (s *inventoryService) GetAvailableProducts() ([]model.Product, error) {
	return s.productRepo.FindAvailable()
}

func (s *inventoryService) GetTransactions(filter repository.LedgerFilter) ([]model.Transaction, error) {
	return s.transactionRepo.FindAll(filter)
}

func (s *inventoryService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	return s.transactionRepo.FindByID(id)
}
