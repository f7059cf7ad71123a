package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxImport TransactionType = "import"
	TxExport TransactionType = "export"
)

// Transaction is one immutable ledger entry. Product name, unit price and
// actor name are denormalized at record time so the ledger stays legible
// after the product is renamed, repriced or deleted.
type Transaction struct {
	BaseModel
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       int64           `gorm:"not null" json:"price"` // unit price snapshot
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName    string          `gorm:"type:varchar(255);not null" json:"user_name"`
	Timestamp   time.Time       `gorm:"not null;index" json:"timestamp"`
}
