package models

import "time"

type CompanyPic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"not null;uniqueIndex:idx_company_pic_name" json:"-"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_company_pic_name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}
