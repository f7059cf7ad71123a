package ledger

import (
	"testing"

	"go-coffee-warehouse/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogEntry(id uuid.UUID, name string, price int64, quantity int) model.Product {
	p := model.Product{Name: name, Price: price, Quantity: quantity}
	p.ID = id
	return p
}

func TestReconcile_ImportMerge(t *testing.T) {
	productID := uuid.New()
	actor := Actor{ID: uuid.New(), Name: "Mara"}
	catalog := []model.Product{catalogEntry(productID, "Arabica", 500, 10)}

	// Name match is case-insensitive; quantities sum, price is last-import-wins
	result, err := Reconcile(Request{
		Type:        model.TxImport,
		ProductName: "arabica",
		Quantity:    5,
		Price:       550,
	}, catalog, actor)

	require.NoError(t, err)
	assert.Equal(t, OpUpdate, result.Mutation.Op)
	assert.Equal(t, productID, result.Mutation.Product.ID)
	assert.Equal(t, 15, result.Mutation.Product.Quantity)
	assert.Equal(t, int64(550), result.Mutation.Product.Price)

	// The ledger entry snapshots the request price and the catalog's name
	assert.Equal(t, model.TxImport, result.Transaction.Type)
	assert.Equal(t, productID, result.Transaction.ProductID)
	assert.Equal(t, "Arabica", result.Transaction.ProductName)
	assert.Equal(t, 5, result.Transaction.Quantity)
	assert.Equal(t, int64(550), result.Transaction.Price)
	assert.Equal(t, actor.ID, result.Transaction.UserID)
	assert.Equal(t, "Mara", result.Transaction.UserName)
	assert.False(t, result.Transaction.Timestamp.IsZero())
}

func TestReconcile_ImportCreatesUnknownProduct(t *testing.T) {
	actor := Actor{ID: uuid.New(), Name: "Mara"}

	result, err := Reconcile(Request{
		Type:        model.TxImport,
		ProductName: "Robusta",
		Quantity:    20,
		Price:       300,
	}, nil, actor)

	require.NoError(t, err)
	assert.Equal(t, OpInsert, result.Mutation.Op)
	assert.NotEqual(t, uuid.Nil, result.Mutation.Product.ID)
	assert.Equal(t, "Robusta", result.Mutation.Product.Name)
	assert.Equal(t, 20, result.Mutation.Product.Quantity)
	assert.Equal(t, int64(300), result.Mutation.Product.Price)

	// Transaction and mutation must agree on the freshly generated id
	assert.Equal(t, result.Mutation.Product.ID, result.Transaction.ProductID)
}

func TestReconcile_ImportNameFoldMatchesStore(t *testing.T) {
	// "ſ" (long s) lowercases to itself, so "Assam" must not merge with
	// "Aſſam" — the same answer LOWER() gives in the database
	actor := Actor{ID: uuid.New(), Name: "Mara"}
	catalog := []model.Product{catalogEntry(uuid.New(), "Aſſam", 400, 8)}

	result, err := Reconcile(Request{
		Type:        model.TxImport,
		ProductName: "Assam",
		Quantity:    2,
		Price:       410,
	}, catalog, actor)

	require.NoError(t, err)
	assert.Equal(t, OpInsert, result.Mutation.Op)

	// Case variants of the same letters still merge
	result, err = Reconcile(Request{
		Type:        model.TxImport,
		ProductName: "AſſAM",
		Quantity:    2,
		Price:       410,
	}, catalog, actor)

	require.NoError(t, err)
	assert.Equal(t, OpUpdate, result.Mutation.Op)
	assert.Equal(t, catalog[0].ID, result.Mutation.Product.ID)
}

func TestReconcile_ImportDoesNotMutateSnapshot(t *testing.T) {
	productID := uuid.New()
	catalog := []model.Product{catalogEntry(productID, "Arabica", 500, 10)}

	_, err := Reconcile(Request{
		Type:        model.TxImport,
		ProductName: "Arabica",
		Quantity:    5,
		Price:       550,
	}, catalog, Actor{ID: uuid.New(), Name: "Mara"})

	require.NoError(t, err)
	assert.Equal(t, 10, catalog[0].Quantity)
	assert.Equal(t, int64(500), catalog[0].Price)
}

func TestReconcile_ExportSufficiency(t *testing.T) {
	productID := uuid.New()
	actor := Actor{ID: uuid.New(), Name: "Joon"}

	tests := []struct {
		name      string
		available int
		quantity  int
		wantOp    MutationOp
		wantQty   int
		wantErr   error
	}{
		{"partial export updates in place", 5, 3, OpUpdate, 2, nil},
		{"exact export empties and removes", 5, 5, OpDelete, 0, nil},
		{"one over available is rejected", 5, 6, 0, 0, ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := []model.Product{catalogEntry(productID, "Arabica", 500, tt.available)}

			result, err := Reconcile(Request{
				Type:      model.TxExport,
				ProductID: productID,
				Quantity:  tt.quantity,
			}, catalog, actor)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				// Rejection leaves the snapshot untouched
				assert.Equal(t, tt.available, catalog[0].Quantity)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOp, result.Mutation.Op)
			assert.Equal(t, tt.wantQty, result.Mutation.Product.Quantity)
		})
	}
}

func TestReconcile_ExportUsesStoredPrice(t *testing.T) {
	productID := uuid.New()
	catalog := []model.Product{catalogEntry(productID, "Arabica", 500, 10)}

	// A caller-supplied price on export must be ignored
	result, err := Reconcile(Request{
		Type:      model.TxExport,
		ProductID: productID,
		Quantity:  4,
		Price:     9999,
	}, catalog, Actor{ID: uuid.New(), Name: "Joon"})

	require.NoError(t, err)
	assert.Equal(t, int64(500), result.Transaction.Price)
	// Export never touches the catalog price
	assert.Equal(t, int64(500), result.Mutation.Product.Price)
}

func TestReconcile_ExportUnknownProduct(t *testing.T) {
	catalog := []model.Product{catalogEntry(uuid.New(), "Arabica", 500, 10)}

	result, err := Reconcile(Request{
		Type:      model.TxExport,
		ProductID: uuid.New(),
		Quantity:  1,
	}, catalog, Actor{ID: uuid.New(), Name: "Joon"})

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, result)
}

func TestReconcile_QuantityPositivity(t *testing.T) {
	productID := uuid.New()
	catalog := []model.Product{catalogEntry(productID, "Arabica", 500, 10)}

	for _, txType := range []model.TransactionType{model.TxImport, model.TxExport} {
		for _, quantity := range []int{0, -3} {
			result, err := Reconcile(Request{
				Type:        txType,
				ProductID:   productID,
				ProductName: "Arabica",
				Quantity:    quantity,
				Price:       100,
			}, catalog, Actor{ID: uuid.New(), Name: "Mara"})

			assert.ErrorIs(t, err, ErrInvalidQuantity, "type=%s quantity=%d", txType, quantity)
			assert.Nil(t, result)
		}
	}
}
