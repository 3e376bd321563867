package models

// AdminPin holds the single 4-digit admin PIN of a company. No row means
// the PIN has not been set yet.
type AdminPin struct {
	CompanyID uint    `gorm:"primaryKey;autoIncrement:false"`
	Company   Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Pin       string  `gorm:"type:varchar(4);not null"`
}

func (AdminPin) TableName() string {
	return "company_admin_pin"
}
