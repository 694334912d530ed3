package dal

import (
	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// Init migrates the survey schema. Called once on startup.
func Init(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Environment{},
		&model.JobRole{},
		&model.Activity{},
		&model.Hazard{},
		&model.Assessment{},
		&model.Measurement{},
		&model.HazardLibrary{},
		&model.MeasurementDevice{},
		&model.Reference{},
		&model.ClassificationRange{},
		&model.AuditRecord{},
		&model.Snapshot{},
	)
}
