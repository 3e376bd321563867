package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/session"
	"github.com/yeremiapane/interior-consult/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errBadCredentials = utils.NewUnauthorizedError("회사코드 또는 비밀번호가 올바르지 않습니다.")

type CompanyService struct {
	DB *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{DB: db}
}

// Authenticate checks a company code/password pair.
func (s *CompanyService) Authenticate(ctx context.Context, code, password string) (session.Identity, error) {
	code = strings.TrimSpace(code)
	if code == "" || password == "" {
		return session.Identity{}, utils.NewValidationError("code, password는 필수입니다.")
	}

	var company models.Company
	err := s.DB.WithContext(ctx).Where("code = ?", code).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session.Identity{}, errBadCredentials
	}
	if err != nil {
		return session.Identity{}, utils.StorageError(err)
	}

	if company.PasswordHash == nil || *company.PasswordHash == "" {
		return session.Identity{}, utils.NewUnauthorizedError("이 회사는 비밀번호가 설정되어 있지 않습니다.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*company.PasswordHash), []byte(password)); err != nil {
		return session.Identity{}, errBadCredentials
	}

	return session.Identity{CompanyID: company.ID, Code: company.Code, Name: company.Name}, nil
}

// Create registers a company with a bcrypt-hashed password.
func (s *CompanyService) Create(ctx context.Context, code, name, password string) (*models.Company, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" || name == "" || password == "" {
		return nil, utils.NewValidationError("code, name, password는 필수입니다.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &utils.AppError{Kind: utils.KindInternal, Message: "비밀번호 처리에 실패했습니다.", Err: err}
	}
	hash := string(hashed)

	company := models.Company{Code: code, Name: name, PasswordHash: &hash}
	if err := s.DB.WithContext(ctx).Create(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflictError("이미 사용 중인 회사코드입니다.")
		}
		return nil, utils.StorageError(err)
	}

	utils.InfoLogger.Printf("Company created: %s (id=%d)", company.Code, company.ID)
	return &company, nil
}
