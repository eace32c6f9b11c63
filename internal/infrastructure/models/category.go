package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SellerID         uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_seller_name"`
	Name             string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_seller_name"`
	Description      string     `gorm:"type:text"`
	ParentCategoryID *uuid.UUID `gorm:"type:uuid;index"`
	Status           string     `gorm:"type:varchar(20);not null"`
	Attributes       string     `gorm:"type:jsonb;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
