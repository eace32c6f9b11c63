package models

import (
	"time"

	"github.com/google/uuid"
)

type Seller struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName         string     `gorm:"type:varchar(255);not null"`
	Email            string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_sellers_email"`
	MobileNumber     string     `gorm:"type:varchar(32);not null"`
	AlternateContact *string    `gorm:"type:varchar(32)"`
	PasswordHash     string     `gorm:"type:varchar(255);not null"`
	EmailVerified    bool       `gorm:"not null;default:false"`
	OtpHash          *string    `gorm:"type:varchar(255)"`
	OtpExpiry        *time.Time `gorm:"index"`
	Status           string     `gorm:"type:varchar(50);not null;index"`
	BusinessInfo     *string    `gorm:"type:jsonb"`
	BankDetails      *string    `gorm:"type:jsonb"`
	Documents        *string    `gorm:"type:jsonb"`
	StoreDetails     *string    `gorm:"type:jsonb"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
