package models

import "time"

type Company struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Code         string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	PasswordHash *string   `gorm:"type:varchar(255)" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"-"`
}

// CompanyMember maps a login email to its company. Used by the email
// session strategy.
type CompanyMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"not null;index" json:"companyId"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"type:varchar(20);not null;default:'owner'" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
