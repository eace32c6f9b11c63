package models

import (
	"time"

	"github.com/google/uuid"
)

// Variant rows are hard-deleted so released SKUs can be reused.
type Variant struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_variants_product_name"`
	SellerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_variants_product_name"`
	SKU          *string   `gorm:"column:sku;type:varchar(100);uniqueIndex:idx_variants_sku"`
	Barcode      string    `gorm:"type:varchar(100)"`
	MRP          float64   `gorm:"column:mrp;type:decimal(12,2);not null"`
	SellingPrice float64   `gorm:"type:decimal(12,2);not null"`
	Stock        int       `gorm:"not null;default:0"`
	LeadTime     string    `gorm:"type:varchar(50)"`
	Status       string    `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
