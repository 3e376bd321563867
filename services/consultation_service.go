package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/session"
	"github.com/yeremiapane/interior-consult/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var errConsultationNotFound = utils.NewNotFoundError("해당 상담을 찾을 수 없거나 수정 권한이 없습니다.")

// ConsultationInput carries both create and patch payloads. A nil field
// means "not supplied": on update the stored value is kept.
type ConsultationInput struct {
	CustomerName *string   `json:"customerName"`
	Contact      *string   `json:"contact"`
	Region       *string   `json:"region"`
	Address      *string   `json:"address"`
	Pyung        *float64  `json:"pyung"`
	Status       *string   `json:"status"`
	Pic          *string   `json:"pic"`
	Note         *string   `json:"note"`
	ConsultedAt  *string   `json:"consultedAt"`
	Scope        *[]string `json:"scope"`
}

var consultedAtLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

type ConsultationService struct {
	DB       *gorm.DB
	Location *time.Location
	Now      func() time.Time
}

func NewConsultationService(db *gorm.DB, loc *time.Location) *ConsultationService {
	if loc == nil {
		loc = time.Local
	}
	return &ConsultationService{DB: db, Location: loc, Now: time.Now}
}

// List returns the company's consultations, newest first. Without an
// identity the list is empty.
func (s *ConsultationService) List(ctx context.Context, id session.Identity) ([]models.Consultation, error) {
	consultations := []models.Consultation{}
	if !id.Valid() {
		return consultations, nil
	}
	if err := s.DB.WithContext(ctx).
		Where("company_id = ?", id.CompanyID).
		Order("id DESC").
		Find(&consultations).Error; err != nil {
		return nil, utils.StorageError(err)
	}
	return consultations, nil
}

func (s *ConsultationService) Get(ctx context.Context, id session.Identity, consultationID uint) (*models.Consultation, error) {
	if !id.Valid() {
		return nil, utils.ErrLoginRequired
	}
	var consultation models.Consultation
	err := s.DB.WithContext(ctx).
		Where("id = ? AND company_id = ?", consultationID, id.CompanyID).
		First(&consultation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errConsultationNotFound
	}
	if err != nil {
		return nil, utils.StorageError(err)
	}
	return &consultation, nil
}

func (s *ConsultationService) Create(ctx context.Context, id session.Identity, in ConsultationInput) (*models.Consultation, error) {
	if !id.Valid() {
		return nil, utils.ErrLoginRequired
	}

	consultation := models.Consultation{
		CompanyID: id.CompanyID,
		Status:    models.StatusReceived,
	}

	if in.CustomerName == nil || strings.TrimSpace(*in.CustomerName) == "" {
		return nil, utils.NewValidationError("고객명은 필수입니다.")
	}
	if in.Contact == nil || strings.TrimSpace(*in.Contact) == "" {
		return nil, utils.NewValidationError("연락처는 필수입니다.")
	}
	consultation.CustomerName = strings.TrimSpace(*in.CustomerName)
	consultation.Contact = strings.TrimSpace(*in.Contact)

	if in.Region != nil {
		consultation.Region = *in.Region
	}
	if in.Address != nil {
		consultation.Address = *in.Address
	}
	if in.Pyung != nil {
		if *in.Pyung < 0 {
			return nil, utils.NewValidationError("평수는 0 이상이어야 합니다.")
		}
		consultation.Pyung = *in.Pyung
	}
	if in.Status != nil && *in.Status != "" {
		if !models.IsValidStatus(*in.Status) {
			return nil, utils.NewValidationError("알 수 없는 진행상태입니다: " + *in.Status)
		}
		consultation.Status = *in.Status
	}
	if in.Pic != nil {
		consultation.Pic = strings.TrimSpace(*in.Pic)
	}
	if in.Note != nil {
		consultation.Note = *in.Note
	}
	if in.ConsultedAt != nil && strings.TrimSpace(*in.ConsultedAt) != "" {
		t, err := s.parseConsultedAt(*in.ConsultedAt)
		if err != nil {
			return nil, err
		}
		if err := s.checkNotPast(t); err != nil {
			return nil, err
		}
		consultation.ConsultedAt = &t
	}
	if in.Scope != nil {
		consultation.Scope = normalizeScope(*in.Scope)
	}

	if err := s.DB.WithContext(ctx).Create(&consultation).Error; err != nil {
		return nil, utils.StorageError(err)
	}

	utils.InfoLogger.Printf("Consultation %d created for company %d", consultation.ID, id.CompanyID)
	return &consultation, nil
}

// Update applies a partial patch: only supplied, non-null fields are written.
func (s *ConsultationService) Update(ctx context.Context, id session.Identity, consultationID uint, in ConsultationInput) (*models.Consultation, error) {
	if !id.Valid() {
		return nil, utils.ErrLoginRequired
	}

	existing, err := s.Get(ctx, id, consultationID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if in.CustomerName != nil {
		name := strings.TrimSpace(*in.CustomerName)
		if name == "" {
			return nil, utils.NewValidationError("고객명은 비워둘 수 없습니다.")
		}
		updates["customer_name"] = name
	}
	if in.Contact != nil {
		updates["contact"] = strings.TrimSpace(*in.Contact)
	}
	if in.Region != nil {
		updates["region"] = *in.Region
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Pyung != nil {
		if *in.Pyung < 0 {
			return nil, utils.NewValidationError("평수는 0 이상이어야 합니다.")
		}
		updates["pyung"] = *in.Pyung
	}
	if in.Status != nil && *in.Status != "" {
		if !models.IsValidStatus(*in.Status) {
			return nil, utils.NewValidationError("알 수 없는 진행상태입니다: " + *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.Pic != nil {
		updates["pic"] = strings.TrimSpace(*in.Pic)
	}
	if in.Note != nil {
		updates["note"] = *in.Note
	}
	if in.ConsultedAt != nil && strings.TrimSpace(*in.ConsultedAt) != "" {
		t, err := s.parseConsultedAt(*in.ConsultedAt)
		if err != nil {
			return nil, err
		}
		// Re-saving an unchanged past appointment is allowed.
		if existing.ConsultedAt == nil || !existing.ConsultedAt.Equal(t) {
			if err := s.checkNotPast(t); err != nil {
				return nil, err
			}
		}
		updates["consulted_at"] = t
	}
	if in.Scope != nil {
		updates["scope"] = normalizeScope(*in.Scope)
	}

	if len(updates) > 0 {
		err := s.DB.WithContext(ctx).
			Model(&models.Consultation{}).
			Where("id = ? AND company_id = ?", consultationID, id.CompanyID).
			Updates(updates).Error
		if err != nil {
			return nil, utils.StorageError(err)
		}
		utils.InfoLogger.Printf("Consultation %d updated (%d fields)", consultationID, len(updates))
	}

	return s.Get(ctx, id, consultationID)
}

func (s *ConsultationService) parseConsultedAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range consultedAtLayouts {
		if t, err := time.ParseInLocation(layout, raw, s.Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, utils.NewValidationError("상담일시 형식이 올바르지 않습니다.")
}

func (s *ConsultationService) checkNotPast(t time.Time) error {
	if t.Before(s.Now().Truncate(time.Minute)) {
		return utils.NewValidationError("상담일시는 현재 이후로 입력해 주세요.")
	}
	return nil
}

// normalizeScope trims labels, drops blanks and duplicates, keeping order.
func normalizeScope(labels []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
