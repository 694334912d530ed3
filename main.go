package main

import (
	"context"
	"log"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/vivasst/risk_survey/biz/dal"
	"github.com/vivasst/risk_survey/biz/handler"
	"github.com/vivasst/risk_survey/biz/middleware"
	"github.com/vivasst/risk_survey/biz/router"
	"github.com/vivasst/risk_survey/biz/service"
	"github.com/vivasst/risk_survey/pkg/common"
	"github.com/vivasst/risk_survey/pkg/config"
	"github.com/vivasst/risk_survey/pkg/database"
	"github.com/vivasst/risk_survey/pkg/lock"
	pkgredis "github.com/vivasst/risk_survey/pkg/redis"
	"github.com/vivasst/risk_survey/pkg/storage"
)

func main() {
	cfg, err := config.Load("config.yaml")
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

	svc := service.NewService(db)
	if cfg.Survey.SeedOnStartup {
		if err := svc.Seed(context.Background()); err != nil {
			log.Fatalf("seed defaults: %v", err)
		}
	}

	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	if redisClient != nil {
		ttl := time.Duration(cfg.Survey.WriteLockTTLSeconds) * time.Second
		middleware.InitMigrationLock(lock.New(redisClient, cfg.Survey.WriteLockKey, ttl, 10*time.Second))
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithBasePath(config.NormalizeBasePath(cfg.Server.BasePath)),
	)
	h.Use(
		middleware.Recovery(),
		middleware.Logging(),
		middleware.CORS(&cfg.CORS),
		middleware.Auth(),
	)

	// Authorization collaborators; the defaults allow everything so a bare
	// deployment stays usable behind a trusted gateway.
	var perms common.PermissionChecker = common.AllowAll
	var features common.FeatureChecker = common.AlwaysOn

	router.RegisterSurveyRoutes(h, handler.NewSurveyHandler(svc), perms, features)
	router.RegisterAttachmentRoutes(h, handler.NewAttachmentHandler(store, cfg.Upload), perms)

	h.Spin()
}
