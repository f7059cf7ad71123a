package model

// Product is a catalog entry. Name is the natural key imports merge on
// (case-insensitive); Price is the most recent import price; Quantity is
// never persisted at zero or below, exhausted products are removed.
type Product struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Price    int64  `gorm:"not null" json:"price"`
	Quantity int    `gorm:"not null" json:"quantity"`
}
