package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"

	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/session"
	"github.com/yeremiapane/interior-consult/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

var (
	errPinFormat        = utils.NewValidationError("비밀번호는 숫자 4자리여야 합니다.")
	errPinConfirm       = utils.NewValidationError("새 비밀번호와 확인 값이 일치하지 않습니다.")
	errPinMismatch      = utils.NewUnauthorizedError("비밀번호가 일치하지 않습니다.")
	errPinCurrentWrong  = utils.NewUnauthorizedError("현재 비밀번호가 올바르지 않습니다.")
	errPinNotConfigured = utils.NewNotFoundError("관리자 비밀번호가 아직 설정되지 않았습니다.")
)

// PinResult is the outcome of a successful PIN submission.
type PinResult struct {
	OK      bool `json:"ok"`
	Created bool `json:"created"`
}

// AdminPinService implements the per-company admin gate. The first valid
// submission defines the PIN; later submissions must match it. Unlock state
// lives in the browser only.
type AdminPinService struct {
	DB *gorm.DB
}

func NewAdminPinService(db *gorm.DB) *AdminPinService {
	return &AdminPinService{DB: db}
}

func (s *AdminPinService) HasPin(ctx context.Context, id session.Identity) (bool, error) {
	if !id.Valid() {
		return false, nil
	}
	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&models.AdminPin{}).
		Where("company_id = ?", id.CompanyID).
		Count(&count).Error; err != nil {
		return false, utils.StorageError(err)
	}
	return count > 0, nil
}

// Submit sets the PIN when none exists, otherwise verifies it.
func (s *AdminPinService) Submit(ctx context.Context, id session.Identity, pin string) (*PinResult, error) {
	if !id.Valid() {
		return nil, utils.ErrLoginRequired
	}
	if !pinPattern.MatchString(pin) {
		return nil, errPinFormat
	}

	db := s.DB.WithContext(ctx)

	res := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.AdminPin{CompanyID: id.CompanyID, Pin: pin})
	if res.Error != nil {
		return nil, utils.StorageError(res.Error)
	}
	if res.RowsAffected == 1 {
		utils.InfoLogger.Printf("Admin PIN set for company %d", id.CompanyID)
		return &PinResult{OK: true, Created: true}, nil
	}

	stored, err := s.storedPin(db, id.CompanyID)
	if err != nil {
		return nil, err
	}
	if !pinsEqual(stored, pin) {
		return nil, errPinMismatch
	}
	return &PinResult{OK: true}, nil
}

// Change replaces the PIN after checking the current value. The replacement
// is a single compare-and-swap UPDATE, so two concurrent changes cannot both
// succeed against the same current value.
func (s *AdminPinService) Change(ctx context.Context, id session.Identity, current, next, confirm string) error {
	if !id.Valid() {
		return utils.ErrLoginRequired
	}
	if !pinPattern.MatchString(current) || !pinPattern.MatchString(next) || !pinPattern.MatchString(confirm) {
		return errPinFormat
	}
	if next != confirm {
		return errPinConfirm
	}

	db := s.DB.WithContext(ctx)

	stored, err := s.storedPin(db, id.CompanyID)
	if err != nil {
		return err
	}
	if !pinsEqual(stored, current) {
		return errPinCurrentWrong
	}
	if current == next {
		return nil
	}

	res := db.Model(&models.AdminPin{}).
		Where("company_id = ? AND pin = ?", id.CompanyID, current).
		Update("pin", next)
	if res.Error != nil {
		return utils.StorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		// Changed by someone else between the read and the swap.
		return errPinCurrentWrong
	}

	utils.InfoLogger.Printf("Admin PIN changed for company %d", id.CompanyID)
	return nil
}

func (s *AdminPinService) storedPin(db *gorm.DB, companyID uint) (string, error) {
	var row models.AdminPin
	err := db.Where("company_id = ?", companyID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errPinNotConfigured
	}
	if err != nil {
		return "", utils.StorageError(err)
	}
	return row.Pin, nil
}

func pinsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
