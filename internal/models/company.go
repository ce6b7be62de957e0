package models

// CompanyInfoID is the primary key of the single company info row.
const CompanyInfoID uint = 1

// CompanyInfo stores the contact block shown on the storefront.
// There is exactly one row, keyed by CompanyInfoID.
type CompanyInfo struct {
	BaseModel
	Telephone    string  `gorm:"not null" json:"telephone"`
	Whatsapp     string  `gorm:"not null" json:"whatsapp"`
	Address      string  `gorm:"not null" json:"address"`
	WorkSchedule string  `gorm:"not null" json:"workSchedule"`
	Email        *string `json:"email"`
	Website      *string `json:"website"`
}
