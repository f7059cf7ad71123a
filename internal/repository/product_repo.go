package repository

import (
	"go-coffee-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindAvailable() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)

	// Locking lookups for the reconciliation write path. Both run inside the
	// caller's transaction and take a FOR UPDATE row lock so concurrent
	// movements against the same product serialize in lock-arrival order.
	LockByID(tx *gorm.DB, id uuid.UUID) ([]model.Product, error)
	LockByName(tx *gorm.DB, name string) ([]model.Product, error)

	Insert(tx *gorm.DB, product *model.Product) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, quantity int, price int64) error
	Remove(tx *gorm.DB, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// FindAvailable returns the catalog entries presentation layers consider
// stock; exhausted products are deleted on export so quantity is always > 0,
// the predicate just makes that contract explicit.
func (r *productRepo) FindAvailable() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("quantity > 0").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).
		Limit(1).
		Find(&products).Error
	return products, err
}

// LockByName is the import-side lookup: name is the merge key, matched
// case-insensitively.
func (r *productRepo) LockByName(tx *gorm.DB, name string) ([]model.Product, error) {
	var products []model.Product
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("LOWER(name) = LOWER(?)", name).
		Limit(1).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Insert(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, quantity int, price int64) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity": quantity,
			"price":    price,
		}).Error
}

// Remove hard-deletes so a later import of the same name can recreate the
// product without tripping over a soft-deleted row.
func (r *productRepo) Remove(tx *gorm.DB, id uuid.UUID) error {
	return tx.Unscoped().Delete(&model.Product{}, "id = ?", id).Error
}
