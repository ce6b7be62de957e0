package models

import (
	"time"

	"gorm.io/datatypes"
)

type ProductStatus string

const (
	StatusInStock      ProductStatus = "IN_STOCK"
	StatusOutOfStock   ProductStatus = "OUT_OF_STOCK"
	StatusLowStock     ProductStatus = "LOW_STOCK"
	StatusPreorder     ProductStatus = "PREORDER"
	StatusDiscontinued ProductStatus = "DISCONTINUED"
)

// Valid reports whether s is a known stock status.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusOutOfStock, StatusLowStock, StatusPreorder, StatusDiscontinued:
		return true
	}
	return false
}

type SaleType string

const (
	SaleRetailOnly    SaleType = "RETAIL_ONLY"
	SaleWholesaleOnly SaleType = "WHOLESALE_ONLY"
	SaleBoth          SaleType = "BOTH"
)

func (s SaleType) Valid() bool {
	switch s {
	case SaleRetailOnly, SaleWholesaleOnly, SaleBoth:
		return true
	}
	return false
}

// Dimensions is stored as a JSON blob on the product row.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Product struct {
	BaseModel
	Name            string                          `gorm:"not null" json:"name"`
	Slug            string                          `gorm:"uniqueIndex;not null" json:"slug"`
	Description     *string                         `json:"description"`
	Price           float64                         `gorm:"not null;index" json:"price"`
	PriceIsFrom     bool                            `gorm:"not null" json:"priceIsFrom"`
	ImageURL        string                          `gorm:"column:image_url" json:"imageUrl"`
	CategoryID      uint                            `gorm:"not null;index" json:"categoryId"`
	Category        *Category                       `json:"-"`
	CategoryRef     *CategoryRef                    `gorm:"-" json:"category"`
	Status          ProductStatus                   `gorm:"type:varchar(32);not null" json:"status"`
	Quantity        *int                            `json:"quantity"`
	IsPublished     bool                            `gorm:"not null;index" json:"isPublished"`
	IsFeatured      bool                            `gorm:"not null" json:"isFeatured"`
	IsNew           bool                            `gorm:"not null" json:"isNew"`
	SKU             *string                         `gorm:"column:sku" json:"sku"`
	Weight          *float64                        `json:"weight"`
	Dimensions      *datatypes.JSONType[Dimensions] `json:"dimensions"`
	Manufacturer    *string                         `gorm:"index" json:"manufacturer"`
	MetaTitle       *string                         `json:"metaTitle"`
	MetaDescription *string                         `json:"metaDescription"`
	SaleType        SaleType                        `gorm:"type:varchar(32);not null" json:"saleType"`
	Images          []ProductImage                  `gorm:"constraint:OnDelete:CASCADE" json:"images"`
}

// ProductImage keeps the ordered gallery of a product. Rows are owned by the product.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"not null" json:"url"`
	ProductID uint      `gorm:"not null;index" json:"productId"`
	OrderNum  int       `gorm:"column:order_num;not null" json:"order_num"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttachCategoryRef copies the loaded category relation into the response shape.
func (p *Product) AttachCategoryRef() {
	if p.Category == nil {
		return
	}
	p.CategoryRef = &CategoryRef{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
}
