// Package ledger holds the inventory reconciliation rules: it turns a
// requested stock movement plus a catalog snapshot into the transaction
// record to append and the catalog mutation to apply. It performs no I/O;
// persisting both parts together is the caller's job.
package ledger

import (
	"errors"
	"strings"
	"time"

	"go-coffee-warehouse/internal/model"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
)

// Actor is the authenticated user recording the movement, stamped onto the
// transaction as both id and denormalized name.
type Actor struct {
	ID   uuid.UUID
	Name string
}

// Request is a movement intent. ProductName drives imports (find-or-create
// by case-insensitive name), ProductID drives exports. Price is only read
// for imports; exports always use the product's stored price.
type Request struct {
	Type        model.TransactionType
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       int64
}

// MutationOp says how the caller must apply the mutation to the catalog.
type MutationOp int

const (
	OpInsert MutationOp = iota
	OpUpdate
	OpDelete
)

// Mutation is the catalog change paired with an emitted transaction.
// For OpDelete only Product.ID is meaningful.
type Mutation struct {
	Op      MutationOp
	Product model.Product
}

// Result pairs the ledger entry with the catalog mutation. Both must be
// persisted in the same storage transaction or neither.
type Result struct {
	Transaction model.Transaction
	Mutation    Mutation
}

// Reconcile validates the request against the catalog snapshot and computes
// the new state. Quantity positivity is checked before any catalog lookup.
func Reconcile(req Request, catalog []model.Product, actor Actor) (*Result, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	switch req.Type {
	case model.TxImport:
		return reconcileImport(req, catalog, actor)
	case model.TxExport:
		return reconcileExport(req, catalog, actor)
	default:
		return nil, errors.New("unknown transaction type")
	}
}

// reconcileImport merges by name: quantities sum, price is last-import-wins.
// Import never fails once the quantity is valid; an unknown name creates a
// fresh product.
func reconcileImport(req Request, catalog []model.Product, actor Actor) (*Result, error) {
	existing := findByName(catalog, req.ProductName)

	var product model.Product
	op := OpInsert
	if existing != nil {
		product = *existing
		product.Quantity += req.Quantity
		product.Price = req.Price
		op = OpUpdate
	} else {
		product = model.Product{
			Name:     req.ProductName,
			Price:    req.Price,
			Quantity: req.Quantity,
		}
		product.ID = uuid.New()
	}

	// The transaction carries the request's price, not the catalog's prior one
	return &Result{
		Transaction: newTransaction(model.TxImport, product.ID, product.Name, req.Quantity, req.Price, actor),
		Mutation:    Mutation{Op: op, Product: product},
	}, nil
}

// reconcileExport references an existing entry by id. Exporting exactly the
// remaining quantity empties the product and removes it from the catalog.
func reconcileExport(req Request, catalog []model.Product, actor Actor) (*Result, error) {
	existing := findByID(catalog, req.ProductID)
	if existing == nil {
		return nil, ErrProductNotFound
	}
	if req.Quantity > existing.Quantity {
		return nil, ErrInsufficientStock
	}

	product := *existing
	product.Quantity -= req.Quantity
	op := OpUpdate
	if product.Quantity <= 0 {
		op = OpDelete
	}

	// Always the stored unit price, never a caller-supplied one
	return &Result{
		Transaction: newTransaction(model.TxExport, product.ID, product.Name, req.Quantity, existing.Price, actor),
		Mutation:    Mutation{Op: op, Product: product},
	}, nil
}

func newTransaction(txType model.TransactionType, productID uuid.UUID, productName string, quantity int, price int64, actor Actor) model.Transaction {
	tx := model.Transaction{
		Type:        txType,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		UserID:      actor.ID,
		UserName:    actor.Name,
		Timestamp:   time.Now().UTC(),
	}
	tx.ID = uuid.New()
	return tx
}

// findByName uses simple case folding, mirroring the SQL LOWER() match the
// locking lookup runs; full folding would accept pairs the store does not.
func findByName(catalog []model.Product, name string) *model.Product {
	target := strings.ToLower(name)
	for i := range catalog {
		if strings.ToLower(catalog[i].Name) == target {
			return &catalog[i]
		}
	}
	return nil
}

func findByID(catalog []model.Product, id uuid.UUID) *model.Product {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
