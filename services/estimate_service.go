package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/session"
	"github.com/yeremiapane/interior-consult/utils"
	"gorm.io/gorm"
)

const estimateDateLayout = "2006-01-02"

var (
	errEstimateNotFound = utils.NewNotFoundError("견적서를 찾을 수 없습니다.")
	errEstimateNoItems  = utils.NewValidationError("견적 항목은 최소 1개 이상이어야 합니다.")
)

// EstimateItemInput is one line as sent by the form. Qty and UnitPrice use
// the parse-with-default policy of utils.Number.
type EstimateItemInput struct {
	Category  string       `json:"category"`
	Spec      string       `json:"spec"`
	Unit      string       `json:"unit"`
	Qty       utils.Number `json:"qty"`
	UnitPrice utils.Number `json:"unitPrice"`
	Note      string       `json:"note"`
}

type EstimateInput struct {
	ConsultationID utils.OptionalID     `json:"consultationId"`
	CustomerName   *string              `json:"customerName"`
	Contact        *string              `json:"contact"`
	Address        *string              `json:"address"`
	Title          *string              `json:"title"`
	EstimateDate   *string              `json:"estimateDate"`
	Note           *string              `json:"note"`
	Items          *[]EstimateItemInput `json:"items"`
}

type EstimateItemView struct {
	Category  string       `json:"category"`
	Spec      string       `json:"spec"`
	Unit      string       `json:"unit"`
	Qty       utils.Number `json:"qty"`
	UnitPrice utils.Number `json:"unitPrice"`
	Amount    utils.Number `json:"amount"`
	Note      string       `json:"note"`
}

// EstimateView is an estimate with its derived totals.
type EstimateView struct {
	ID             uint               `json:"id"`
	ConsultationID *uint              `json:"consultationId,omitempty"`
	CustomerName   string             `json:"customerName"`
	Contact        string             `json:"contact"`
	Address        string             `json:"address"`
	Title          string             `json:"title"`
	EstimateDate   string             `json:"estimateDate"`
	Note           string             `json:"note"`
	Items          []EstimateItemView `json:"items"`
	Subtotal       utils.Number       `json:"subtotal"`
	VAT            utils.Number       `json:"vat"`
	Total          utils.Number       `json:"total"`
	CreatedAt      time.Time          `json:"createdAt"`
}

func NewEstimateView(e models.Estimate) EstimateView {
	totals := ComputeTotals(e.Items)
	view := EstimateView{
		ID:             e.ID,
		ConsultationID: e.ConsultationID,
		CustomerName:   e.CustomerName,
		Contact:        e.Contact,
		Address:        e.Address,
		Title:          e.Title,
		EstimateDate:   e.EstimateDate,
		Note:           e.Note,
		Items:          make([]EstimateItemView, 0, len(e.Items)),
		Subtotal:       utils.Number{Decimal: totals.Subtotal},
		VAT:            utils.Number{Decimal: totals.VAT},
		Total:          utils.Number{Decimal: totals.Total},
		CreatedAt:      e.CreatedAt,
	}
	for _, it := range e.Items {
		view.Items = append(view.Items, EstimateItemView{
			Category:  it.Category,
			Spec:      it.Spec,
			Unit:      it.Unit,
			Qty:       utils.Number{Decimal: it.Qty},
			UnitPrice: utils.Number{Decimal: it.UnitPrice},
			Amount:    utils.Number{Decimal: it.Amount()},
			Note:      it.Note,
		})
	}
	return view
}

type EstimateService struct {
	DB       *gorm.DB
	Location *time.Location
	Now      func() time.Time
}

func NewEstimateService(db *gorm.DB, loc *time.Location) *EstimateService {
	if loc == nil {
		loc = time.Local
	}
	return &EstimateService{DB: db, Location: loc, Now: time.Now}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}

// List returns the company's estimates, newest first. Without an identity
// the list is empty.
func (s *EstimateService) List(ctx context.Context, id session.Identity) ([]EstimateView, error) {
	views := []EstimateView{}
	if !id.Valid() {
		return views, nil
	}
	var estimates []models.Estimate
	if err := s.DB.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("company_id = ?", id.CompanyID).
		Order("id DESC").
		Find(&estimates).Error; err != nil {
		return nil, utils.StorageError(err)
	}
	for _, e := range estimates {
		views = append(views, NewEstimateView(e))
	}
	return views, nil
}

func (s *EstimateService) Get(ctx context.Context, id session.Identity, estimateID uint) (*models.Estimate, error) {
	if !id.Valid() {
		return nil, utils.ErrLoginRequired
	}
	var estimate models.Estimate
	err := s.DB.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("id = ? AND company_id = ?", estimateID, id.CompanyID).
		First(&estimate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errEstimateNotFound
	}
	if err != nil {
		return nil, utils.StorageError(err)
	}
	return &estimate, nil
}

func (s *EstimateService) Create(ctx context.Context, id session.Identity, in EstimateInput) (*models.Estimate, error) {
	if !id.Valid() {
		return nil, utils.ErrLoginRequired
	}
	if in.Items == nil || len(*in.Items) == 0 {
		return nil, errEstimateNoItems
	}

	estimate := models.Estimate{
		CompanyID:      id.CompanyID,
		ConsultationID: in.ConsultationID.Value,
		CustomerName:   trimmed(in.CustomerName),
		Contact:        trimmed(in.Contact),
		Address:        trimmed(in.Address),
		Title:          trimmed(in.Title),
		Note:           trimmed(in.Note),
		Items:          buildItems(*in.Items),
	}

	date, err := s.estimateDate(in.EstimateDate)
	if err != nil {
		return nil, err
	}
	estimate.EstimateDate = date

	if err := s.seedFromConsultation(ctx, id, &estimate); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(&estimate).Error; err != nil {
		return nil, utils.StorageError(err)
	}

	utils.InfoLogger.Printf("Estimate %d created with %d items for company %d", estimate.ID, len(estimate.Items), id.CompanyID)
	// Re-read so the response carries the stored numeric scale.
	return s.Get(ctx, id, estimate.ID)
}

// Update writes the supplied fields. A supplied item list replaces the
// stored one in the same transaction.
func (s *EstimateService) Update(ctx context.Context, id session.Identity, estimateID uint, in EstimateInput) (*models.Estimate, error) {
	if !id.Valid() {
		return nil, utils.ErrLoginRequired
	}
	if in.Items != nil && len(*in.Items) == 0 {
		return nil, errEstimateNoItems
	}

	updates := map[string]interface{}{}
	if in.ConsultationID.Value != nil {
		updates["consultation_id"] = *in.ConsultationID.Value
	}
	if in.CustomerName != nil {
		updates["customer_name"] = strings.TrimSpace(*in.CustomerName)
	}
	if in.Contact != nil {
		updates["contact"] = strings.TrimSpace(*in.Contact)
	}
	if in.Address != nil {
		updates["address"] = strings.TrimSpace(*in.Address)
	}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Note != nil {
		updates["note"] = strings.TrimSpace(*in.Note)
	}
	if in.EstimateDate != nil {
		date, err := s.estimateDate(in.EstimateDate)
		if err != nil {
			return nil, err
		}
		updates["estimate_date"] = date
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Estimate
		if err := tx.Select("id").
			Where("id = ? AND company_id = ?", estimateID, id.CompanyID).
			First(&existing).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
		}
		if in.Items != nil {
			if err := tx.Where("estimate_id = ?", estimateID).Delete(&models.EstimateItem{}).Error; err != nil {
				return err
			}
			items := buildItems(*in.Items)
			for i := range items {
				items[i].EstimateID = estimateID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errEstimateNotFound
	}
	if err != nil {
		return nil, utils.StorageError(err)
	}

	utils.InfoLogger.Printf("Estimate %d updated", estimateID)
	return s.Get(ctx, id, estimateID)
}

func (s *EstimateService) Delete(ctx context.Context, id session.Identity, estimateID uint) error {
	if !id.Valid() {
		return utils.ErrLoginRequired
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Estimate
		if err := tx.Select("id").
			Where("id = ? AND company_id = ?", estimateID, id.CompanyID).
			First(&existing).Error; err != nil {
			return err
		}
		if err := tx.Where("estimate_id = ?", estimateID).Delete(&models.EstimateItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("company_id = ?", id.CompanyID).Delete(&models.Estimate{}, estimateID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errEstimateNotFound
	}
	if err != nil {
		return utils.StorageError(err)
	}
	utils.InfoLogger.Printf("Estimate %d deleted", estimateID)
	return nil
}

// seedFromConsultation copies customer details from the referenced
// consultation into blank fields. Consultations of other companies are
// ignored.
func (s *EstimateService) seedFromConsultation(ctx context.Context, id session.Identity, e *models.Estimate) error {
	if e.ConsultationID == nil {
		return nil
	}
	if e.CustomerName != "" && e.Contact != "" && e.Address != "" {
		return nil
	}

	var c models.Consultation
	err := s.DB.WithContext(ctx).
		Where("id = ? AND company_id = ?", *e.ConsultationID, id.CompanyID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return utils.StorageError(err)
	}

	if e.CustomerName == "" {
		e.CustomerName = c.CustomerName
	}
	if e.Contact == "" {
		e.Contact = c.Contact
	}
	if e.Address == "" {
		e.Address = c.Address
	}
	return nil
}

func (s *EstimateService) estimateDate(raw *string) (string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return s.Now().In(s.Location).Format(estimateDateLayout), nil
	}
	d := strings.TrimSpace(*raw)
	if _, err := time.Parse(estimateDateLayout, d); err != nil {
		return "", utils.NewValidationError("견적일 형식이 올바르지 않습니다 (YYYY-MM-DD).")
	}
	return d, nil
}

func buildItems(in []EstimateItemInput) []models.EstimateItem {
	items := make([]models.EstimateItem, 0, len(in))
	for i, it := range in {
		unit := strings.TrimSpace(it.Unit)
		if unit == "" {
			unit = models.DefaultItemUnit
		}
		items = append(items, models.EstimateItem{
			Position:  i,
			Category:  strings.TrimSpace(it.Category),
			Spec:      strings.TrimSpace(it.Spec),
			Unit:      unit,
			Qty:       it.Qty.Decimal.Round(models.QtyScale),
			UnitPrice: it.UnitPrice.Decimal.Round(models.UnitPriceScale),
			Note:      strings.TrimSpace(it.Note),
		})
	}
	return items
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
