package main

import (
	"context"
	"flag"
	"log"

	"github.com/vivasst/risk_survey/biz/dal"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/service"
	"github.com/vivasst/risk_survey/pkg/common"
	"github.com/vivasst/risk_survey/pkg/config"
	"github.com/vivasst/risk_survey/pkg/database"
	"gorm.io/gorm"
)

// Backfills the environment/role/activity hierarchy for hazards created under
// the flat legacy schema. Safe to re-run: a second pass changes nothing.
//
// Usage: go run script/run_legacy_migration.go [-config config.yaml] [-dry-run]

var (
	configPath = flag.String("config", "config.yaml", "Path to the service config file")
	dryRun     = flag.Bool("dry-run", false, "Report what would be migrated without changing anything")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := dal.Init(db); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	if *dryRun {
		if err := report(context.Background(), db); err != nil {
			log.Fatalf("dry run failed: %v", err)
		}
		return
	}

	svc := service.NewService(db)
	summary, err := svc.RunLegacyMigration(context.Background(), common.System())
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Printf("migrated risks:        %d", summary.MigratedRisks)
	log.Printf("created environments:  %d", summary.CreatedEnvironments)
	log.Printf("created roles:         %d", summary.CreatedRoles)
	log.Printf("created activities:    %d", summary.CreatedActivities)
	log.Printf("linked libraries:      %d", summary.LinkedLibraries)
	log.Printf("linked devices:        %d", summary.LinkedDevices)
}

func report(ctx context.Context, db *gorm.DB) error {
	var orphanHazards int64
	if err := db.WithContext(ctx).Model(&model.Hazard{}).
		Where("activity_id = ? OR activity_id IS NULL", "").
		Count(&orphanHazards).Error; err != nil {
		return err
	}

	var unlinkedLibraries int64
	if err := db.WithContext(ctx).Model(&model.Hazard{}).
		Where("risk_library_id = ? OR risk_library_id IS NULL", "").
		Count(&unlinkedLibraries).Error; err != nil {
		return err
	}

	var orphanMeasurements int64
	if err := db.WithContext(ctx).Model(&model.Measurement{}).
		Where("device_id = ? OR device_id IS NULL", "").
		Count(&orphanMeasurements).Error; err != nil {
		return err
	}

	log.Printf("dry run: %d hazards without an activity", orphanHazards)
	log.Printf("dry run: %d hazards without a library link", unlinkedLibraries)
	log.Printf("dry run: %d measurements without a device", orphanMeasurements)
	return nil
}
