package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/session"
	"github.com/yeremiapane/interior-consult/utils"
	"gorm.io/gorm"
)

var errDuplicatePic = utils.NewConflictError("이미 등록된 담당자입니다.")

// PicService manages the per-company staff directory. Consultations keep
// the staff name as text, so nothing here touches them.
type PicService struct {
	DB *gorm.DB
}

func NewPicService(db *gorm.DB) *PicService {
	return &PicService{DB: db}
}

func (s *PicService) List(ctx context.Context, id session.Identity) ([]models.CompanyPic, error) {
	pics := []models.CompanyPic{}
	if !id.Valid() {
		return pics, nil
	}
	if err := s.DB.WithContext(ctx).
		Where("company_id = ?", id.CompanyID).
		Order("id ASC").
		Find(&pics).Error; err != nil {
		return nil, utils.StorageError(err)
	}
	return pics, nil
}

func (s *PicService) Create(ctx context.Context, id session.Identity, name string) (*models.CompanyPic, error) {
	if !id.Valid() {
		return nil, utils.ErrLoginRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.NewValidationError("담당자 이름을 입력해 주세요.")
	}

	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&models.CompanyPic{}).
		Where("company_id = ? AND name = ?", id.CompanyID, name).
		Count(&count).Error; err != nil {
		return nil, utils.StorageError(err)
	}
	if count > 0 {
		return nil, errDuplicatePic
	}

	pic := models.CompanyPic{CompanyID: id.CompanyID, Name: name}
	if err := db.Create(&pic).Error; err != nil {
		// The unique index still catches a concurrent insert of the same name.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicatePic
		}
		return nil, utils.StorageError(err)
	}

	utils.InfoLogger.Printf("PIC %q added for company %d", pic.Name, id.CompanyID)
	return &pic, nil
}

func (s *PicService) Delete(ctx context.Context, id session.Identity, picID uint) error {
	if !id.Valid() {
		return utils.ErrLoginRequired
	}
	res := s.DB.WithContext(ctx).
		Where("id = ? AND company_id = ?", picID, id.CompanyID).
		Delete(&models.CompanyPic{})
	if res.Error != nil {
		return utils.StorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("담당자를 찾을 수 없습니다.")
	}
	utils.InfoLogger.Printf("PIC %d deleted for company %d", picID, id.CompanyID)
	return nil
}
