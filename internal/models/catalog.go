package models

type Category struct {
	BaseModel
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description *string   `json:"description"`
	Products    []Product `json:"products,omitempty"`
}

// CategorySummary is the listing shape used by the storefront menu and the admin panel.
type CategorySummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int64  `json:"productCount"`
}

// CategoryRef is the denormalized category attached to listed products.
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
