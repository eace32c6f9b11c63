package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CategoryID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title            string    `gorm:"type:varchar(255);not null"`
	Brand            string    `gorm:"type:varchar(255);not null"`
	Description      string    `gorm:"type:text;not null"`
	ShortDescription string    `gorm:"type:text"`
	Tags             string    `gorm:"type:jsonb;not null"`
	Images           string    `gorm:"type:jsonb;not null"`
	Attributes       string    `gorm:"type:jsonb;not null"`
	ShippingDetails  string    `gorm:"type:jsonb;not null"`
	TaxPercentage    float64   `gorm:"type:decimal(5,2);not null;default:0"`
	HSNCode          string    `gorm:"column:hsn_code;type:varchar(32)"`
	Status           string    `gorm:"type:varchar(30);not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
