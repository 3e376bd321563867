package database

import (
	"fmt"

	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/utils"
	"gorm.io/gorm"
)

type migrationStep struct {
	name  string
	model interface{}
}

// Steps run in dependency order. AutoMigrate only creates missing tables,
// columns and indexes, so running Migrate repeatedly is safe.
var steps = []migrationStep{
	{"companies", &models.Company{}},
	{"company_members", &models.CompanyMember{}},
	{"consultations", &models.Consultation{}},
	{"company_pics", &models.CompanyPic{}},
	{"company_admin_pin", &models.AdminPin{}},
	{"estimates", &models.Estimate{}},
	{"estimate_items", &models.EstimateItem{}},
}

// Models lists every persisted model, for tests that build a schema directly.
func Models() []interface{} {
	out := make([]interface{}, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.model)
	}
	return out
}

func Migrate(db *gorm.DB) error {
	for _, s := range steps {
		if err := db.AutoMigrate(s.model); err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
		utils.InfoLogger.Printf("[migrate] %s OK", s.name)
	}

	// Rows written before the status default existed.
	res := db.Model(&models.Consultation{}).
		Where("status IS NULL OR status = ''").
		Update("status", models.StatusReceived)
	if res.Error != nil {
		return fmt.Errorf("backfill consultation status: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		utils.InfoLogger.Printf("[migrate] backfilled status on %d consultations", res.RowsAffected)
	}

	utils.InfoLogger.Println("[migrate] done")
	return nil
}

// optionalColumns were added after the first release and may be missing
// on databases that were never migrated.
var optionalColumns = []struct {
	model  interface{}
	column string
}{
	{&models.Consultation{}, "consulted_at"},
	{&models.Consultation{}, "scope"},
	{&models.Estimate{}, "company_id"},
}

// CheckSchema returns the optional columns missing from the live schema and
// logs a warning for each.
func CheckSchema(db *gorm.DB) []string {
	var missing []string
	m := db.Migrator()
	for _, oc := range optionalColumns {
		if !m.HasTable(oc.model) {
			continue
		}
		if !m.HasColumn(oc.model, oc.column) {
			missing = append(missing, oc.column)
			utils.ErrorLogger.Printf("Column %s is missing; run 'interior-consult migrate'", oc.column)
		}
	}
	return missing
}
