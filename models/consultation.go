package models

import (
	"time"

	"gorm.io/datatypes"
)

const StatusReceived = "접수"

// ConsultationStatuses is the fixed label set, in workflow order.
var ConsultationStatuses = []string{
	StatusReceived,
	"현장실측",
	"견적미팅",
	"견적완료",
	"상담종단",
	"계약",
	"취소",
	"완료",
}

// DefaultScopeLabels is the construction checklist offered before any
// per-record labels are added.
var DefaultScopeLabels = []string{
	"샤시제외", "전체시공", "도배", "바닥", "거실욕실", "안방욕실", "싱크대", "전기조명",
	"중문", "확장", "방수", "신발장", "붙박이장", "화장대", "문교체",
}

func IsValidStatus(status string) bool {
	for _, s := range ConsultationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Consultation struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	CompanyID    uint    `gorm:"not null;index" json:"-"`
	Company      Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CustomerName string  `gorm:"type:varchar(100);not null" json:"customerName"`
	Contact      string  `gorm:"type:varchar(50);not null" json:"contact"`
	Region       string  `gorm:"type:varchar(100)" json:"region"`
	Address      string  `gorm:"type:text" json:"address"`
	Pyung        float64 `gorm:"not null;default:0" json:"pyung"`
	Status       string  `gorm:"type:varchar(20);not null;default:'접수'" json:"status"`
	// Pic is the assigned staff name, copied as text from the staff directory.
	Pic         string                      `gorm:"type:varchar(100)" json:"pic"`
	Note        string                      `gorm:"type:text" json:"note"`
	ConsultedAt *time.Time                  `json:"consultedAt,omitempty"`
	Scope       datatypes.JSONSlice[string] `json:"scope"`
	CreatedAt   time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updatedAt"`
}
