package session

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/utils"
	"gorm.io/gorm"
)

const DefaultEmailHeader = "X-User-Email"

// EmailResolver resolves the company from a trusted upstream email header.
// The first request for an unknown email provisions a company and an owner
// membership.
type EmailResolver struct {
	DB     *gorm.DB
	Header string
}

func NewEmailResolver(db *gorm.DB, header string) *EmailResolver {
	if header == "" {
		header = DefaultEmailHeader
	}
	return &EmailResolver{DB: db, Header: header}
}

func (er *EmailResolver) Resolve(r *http.Request) (Identity, error) {
	email := normalizeEmail(r.Header.Get(er.Header))
	if email == "" {
		return Identity{}, ErrNoIdentity
	}

	db := er.DB.WithContext(r.Context())

	id, err := er.lookup(db, email)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{}, err
	}

	if err := er.provision(db, email); err != nil {
		// Another request may have provisioned the same email first.
		if id, lookupErr := er.lookup(db, email); lookupErr == nil {
			return id, nil
		}
		return Identity{}, err
	}
	return er.lookup(db, email)
}

func (er *EmailResolver) lookup(db *gorm.DB, email string) (Identity, error) {
	var member models.CompanyMember
	if err := db.Preload("Company").Where("email = ?", email).First(&member).Error; err != nil {
		return Identity{}, err
	}
	return Identity{
		CompanyID: member.Company.ID,
		Code:      member.Company.Code,
		Name:      member.Company.Name,
	}, nil
}

func (er *EmailResolver) provision(db *gorm.DB, email string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		company := models.Company{
			Name: email,
			Code: "c-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		member := models.CompanyMember{
			CompanyID: company.ID,
			Email:     email,
			Role:      "owner",
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Provisioned company %d (%s) for %s", company.ID, company.Code, email)
		return nil
	})
}

func normalizeEmail(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(addr.Address)
}
