package service

import (
	"testing"

	"go-coffee-warehouse/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// The guards below all reject before the DB transaction opens, so the
// service is constructed without a database.

func TestInventoryService_RecordTransaction_RoleGate(t *testing.T) {
	svc := NewInventoryService(nil, nil, nil, nil)

	tests := []struct {
		name string
		role model.Role
		req  TransactionRequest
	}{
		{
			name: "exporter cannot import",
			role: model.RoleExporter,
			req:  TransactionRequest{Type: model.TxImport, ProductName: "Arabica", Quantity: 5, Price: 500},
		},
		{
			name: "importer cannot export",
			role: model.RoleImporter,
			req:  TransactionRequest{Type: model.TxExport, ProductID: uuid.New(), Quantity: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := testUser(tt.role, true, "")

			tx, err := svc.RecordTransaction(&tt.req, actor)

			assert.ErrorIs(t, err, ErrRoleNotPermitted)
			assert.Nil(t, tx)
		})
	}
}

func TestInventoryService_RecordTransaction_ImportRequiresName(t *testing.T) {
	svc := NewInventoryService(nil, nil, nil, nil)
	actor := testUser(model.RoleImporter, true, "")

	tx, err := svc.RecordTransaction(&TransactionRequest{
		Type:     model.TxImport,
		Quantity: 5,
		Price:    500,
	}, actor)

	assert.ErrorIs(t, err, ErrProductNameRequired)
	assert.Nil(t, tx)
}

func TestInventoryService_RecordTransaction_RejectsUnknownType(t *testing.T) {
	svc := NewInventoryService(nil, nil, nil, nil)
	actor := testUser(model.RoleAdmin, true, "")

	tx, err := svc.RecordTransaction(&TransactionRequest{
		Type:        model.TransactionType("transfer"),
		ProductName: "Arabica",
		Quantity:    5,
		Price:       500,
	}, actor)

	assert.ErrorContains(t, err, "oneof")
	assert.Nil(t, tx)
}
