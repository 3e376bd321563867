package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultItemUnit = "식"

// Decimal places kept by the numeric columns of EstimateItem.
const (
	QtyScale       = 3
	UnitPriceScale = 2
)

type Estimate struct {
	ID uint `gorm:"primaryKey"`
	// Rows written before estimates were company-owned carry 0 and are
	// visible to no company.
	CompanyID      uint  `gorm:"not null;default:0;index"`
	ConsultationID *uint `gorm:"index"`
	// Customer fields are copied at creation time, not linked.
	CustomerName string         `gorm:"type:varchar(100)"`
	Contact      string         `gorm:"type:varchar(50)"`
	Address      string         `gorm:"type:text"`
	Title        string         `gorm:"type:varchar(255)"`
	EstimateDate string         `gorm:"type:varchar(10)"`
	Note         string         `gorm:"type:text"`
	Items        []EstimateItem `gorm:"foreignKey:EstimateID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt    time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
}

type EstimateItem struct {
	ID         uint            `gorm:"primaryKey"`
	EstimateID uint            `gorm:"not null;index"`
	Position   int             `gorm:"not null;default:0"`
	Category   string          `gorm:"type:varchar(100)"`
	Spec       string          `gorm:"type:text"`
	Unit       string          `gorm:"type:varchar(20)"`
	Qty        decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	Note       string          `gorm:"type:text"`
}

// Amount is qty × unit price.
func (i EstimateItem) Amount() decimal.Decimal {
	return i.Qty.Mul(i.UnitPrice)
}
