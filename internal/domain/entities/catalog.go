package entities

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// CategoryStatus represents category visibility
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

// Valid reports whether s is a known category status
func (s CategoryStatus) Valid() bool {
	return s == CategoryStatusActive || s == CategoryStatusInactive
}

// CategoryAttributes holds reusable product metadata defaults
type CategoryAttributes struct {
	FSSAILicenceNumber  string `json:"fssaiLicenceNumber,omitempty"`
	ReturnPolicy        string `json:"returnPolicy,omitempty"`
	Origin              string `json:"origin,omitempty"`
	CustomerCareEmail   string `json:"customerCareEmail,omitempty"`
	CustomerCarePhone   string `json:"customerCarePhone,omitempty"`
	ManufacturerName    string `json:"manufacturerName,omitempty"`
	ExpiryDateRequired  bool   `json:"expiryDateRequired"`
	ProductWarrantyInfo string `json:"productWarrantyInfo,omitempty"`
}

// Category is a seller-owned node of the catalog tree
type Category struct {
	ID               uuid.UUID          `json:"id"`
	SellerID         uuid.UUID          `json:"sellerId"`
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	ParentCategoryID *uuid.UUID         `json:"parentCategory"`
	Status           CategoryStatus     `json:"status"`
	Attributes       CategoryAttributes `json:"attributes"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	Name             string              `json:"name" binding:"required"`
	Description      string              `json:"description"`
	ParentCategoryID *uuid.UUID          `json:"parentCategory"`
	Status           CategoryStatus      `json:"status"`
	Attributes       *CategoryAttributes `json:"attributes"`
}

// UpdateCategoryInput represents a partial category update
type UpdateCategoryInput struct {
	Name             *string             `json:"name"`
	Description      *string             `json:"description"`
	ParentCategoryID *uuid.UUID          `json:"parentCategory"`
	ClearParent      bool                `json:"clearParent"`
	Status           *CategoryStatus     `json:"status"`
	Attributes       *CategoryAttributes `json:"attributes"`
}

// ProductStatus represents the listing state of a product
type ProductStatus string

const (
	ProductStatusDraft           ProductStatus = "draft"
	ProductStatusPendingApproval ProductStatus = "pending-approval"
	ProductStatusPublished       ProductStatus = "published"
	ProductStatusRejected        ProductStatus = "rejected"
	ProductStatusArchived        ProductStatus = "archived"
)

// Valid reports whether s is a known product status
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusPendingApproval, ProductStatusPublished, ProductStatusRejected, ProductStatusArchived:
		return true
	}
	return false
}

// ProductAttributes holds compliance metadata shared by all variants
type ProductAttributes struct {
	FSSAINumber      string    `json:"fssaiNumber,omitempty"`
	Origin           string    `json:"origin,omitempty"`
	Manufacturer     string    `json:"manufacturer,omitempty"`
	ReturnPolicy     string    `json:"returnPolicy,omitempty"`
	CustomerCareInfo string    `json:"customerCareInfo,omitempty"`
	ExpiryDate       null.Time `json:"expiryDate"`
}

// ShippingDetails holds package dimensions in grams and centimetres
type ShippingDetails struct {
	Weight     float64 `json:"weight"`
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Fragile    bool    `json:"fragile"`
	Perishable bool    `json:"perishable"`
}

// Product is the shared listing data of a group of variants
type Product struct {
	ID               uuid.UUID         `json:"id"`
	SellerID         uuid.UUID         `json:"sellerId"`
	CategoryID       uuid.UUID         `json:"categoryId"`
	Title            string            `json:"title"`
	Brand            string            `json:"brand"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	Tags             []string          `json:"tags"`
	Images           []string          `json:"images"`
	Attributes       ProductAttributes `json:"attributes"`
	ShippingDetails  ShippingDetails   `json:"shippingDetails"`
	TaxPercentage    float64           `json:"taxPercentage"`
	HSNCode          string            `json:"hsnCode,omitempty"`
	Status           ProductStatus     `json:"status"`
	Variants         []*Variant        `json:"variants,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// CreateProductInput represents input for creating a product with its variants
type CreateProductInput struct {
	CategoryID       uuid.UUID          `json:"categoryId"`
	Title            string             `json:"title"`
	Brand            string             `json:"brand"`
	Description      string             `json:"description"`
	ShortDescription string             `json:"shortDescription"`
	Tags             []string           `json:"tags"`
	ExistingImages   []string           `json:"existingImages"`
	Attributes       *ProductAttributes `json:"attributes"`
	ShippingDetails  *ShippingDetails   `json:"shippingDetails"`
	TaxPercentage    *float64           `json:"taxPercentage"`
	HSNCode          string             `json:"hsnCode"`
	Status           ProductStatus      `json:"status"`
	Variants         []VariantInput     `json:"variants"`
}

// UpdateProductInput represents a partial update of product-level fields
type UpdateProductInput struct {
	CategoryID       *uuid.UUID         `json:"categoryId"`
	Title            *string            `json:"title"`
	Brand            *string            `json:"brand"`
	Description      *string            `json:"description"`
	ShortDescription *string            `json:"shortDescription"`
	Tags             []string           `json:"tags"`
	ExistingImages   []string           `json:"existingImages"`
	Attributes       *ProductAttributes `json:"attributes"`
	ShippingDetails  *ShippingDetails   `json:"shippingDetails"`
	TaxPercentage    *float64           `json:"taxPercentage"`
	HSNCode          *string            `json:"hsnCode"`
	Status           *ProductStatus     `json:"status"`
}

// VariantStatus represents the sellable state of a variant
type VariantStatus string

const (
	VariantStatusActive     VariantStatus = "active"
	VariantStatusInactive   VariantStatus = "inactive"
	VariantStatusOutOfStock VariantStatus = "outOfStock"
)

// Valid reports whether s is a known variant status
func (s VariantStatus) Valid() bool {
	switch s {
	case VariantStatusActive, VariantStatusInactive, VariantStatusOutOfStock:
		return true
	}
	return false
}

// Variant is a purchasable SKU of a product
type Variant struct {
	ID           uuid.UUID     `json:"id"`
	ProductID    uuid.UUID     `json:"productId"`
	SellerID     uuid.UUID     `json:"sellerId"`
	Name         string        `json:"name"`
	SKU          null.String   `json:"sku"`
	Barcode      string        `json:"barcode,omitempty"`
	MRP          float64       `json:"mrp"`
	SellingPrice float64       `json:"sellingPrice"`
	Stock        int           `json:"stock"`
	LeadTime     string        `json:"leadTime,omitempty"`
	Status       VariantStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Discount returns the rounded percentage off MRP, or 0 when not discounted
func (v Variant) Discount() int {
	if v.MRP > 0 && v.SellingPrice < v.MRP {
		return int(math.Round((v.MRP - v.SellingPrice) / v.MRP * 100))
	}
	return 0
}

// ApplyStockRule forces outOfStock when no units remain
func (v *Variant) ApplyStockRule() {
	if v.Stock == 0 {
		v.Status = VariantStatusOutOfStock
	}
}

// MarshalJSON adds the derived discount to the wire form
func (v Variant) MarshalJSON() ([]byte, error) {
	type variantAlias Variant
	return json.Marshal(struct {
		variantAlias
		Discount int `json:"discount"`
	}{
		variantAlias: variantAlias(v),
		Discount:     v.Discount(),
	})
}

// VariantInput represents one variant in a create or add request
type VariantInput struct {
	Name         string        `json:"name"`
	SKU          string        `json:"sku"`
	Barcode      string        `json:"barcode"`
	MRP          *float64      `json:"mrp"`
	SellingPrice *float64      `json:"sellingPrice"`
	Stock        *int          `json:"stock"`
	LeadTime     string        `json:"leadTime"`
	Status       VariantStatus `json:"status"`
}

// UpdateVariantInput represents a partial variant update
type UpdateVariantInput struct {
	Name         *string        `json:"name"`
	SKU          *string        `json:"sku"`
	Barcode      *string        `json:"barcode"`
	MRP          *float64       `json:"mrp"`
	SellingPrice *float64       `json:"sellingPrice"`
	Stock        *int           `json:"stock"`
	LeadTime     *string        `json:"leadTime"`
	Status       *VariantStatus `json:"status"`
}
