package service

import (
	"github.com/vivasst/risk_survey/biz/dal/db"
	"gorm.io/gorm"
)

// Logic bundles the persistence handles used by the survey services.
type Logic struct {
	db             *gorm.DB
	environmentDAO *db.EnvironmentDAO
	jobRoleDAO     *db.JobRoleDAO
	activityDAO    *db.ActivityDAO
	hazardDAO      *db.HazardDAO
	assessmentDAO  *db.AssessmentDAO
	measurementDAO *db.MeasurementDAO
	libraryDAO     *db.HazardLibraryDAO
	deviceDAO      *db.MeasurementDeviceDAO
	referenceDAO   *db.ReferenceDAO
	auditDAO       *db.AuditDAO
	snapshotDAO    *db.SnapshotDAO
}

func NewLogic(dbConn *gorm.DB) *Logic {
	return &Logic{
		db:             dbConn,
		environmentDAO: db.NewEnvironmentDAO(),
		jobRoleDAO:     db.NewJobRoleDAO(),
		activityDAO:    db.NewActivityDAO(),
		hazardDAO:      db.NewHazardDAO(),
		assessmentDAO:  db.NewAssessmentDAO(),
		measurementDAO: db.NewMeasurementDAO(),
		libraryDAO:     db.NewHazardLibraryDAO(),
		deviceDAO:      db.NewMeasurementDeviceDAO(),
		referenceDAO:   db.NewReferenceDAO(),
		auditDAO:       db.NewAuditDAO(),
		snapshotDAO:    db.NewSnapshotDAO(),
	}
}

// Service orchestrates survey operations on top of Logic.
type Service struct {
	logic *Logic
}

func NewService(dbConn *gorm.DB) *Service {
	return &Service{logic: NewLogic(dbConn)}
}
