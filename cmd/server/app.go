package main

import (
	"fmt"

	"gorm.io/gorm"

	"agromonitor/config"
	"agromonitor/database"
	"agromonitor/pkg/logger"
	"agromonitor/pkg/notify"
	"agromonitor/pkg/rules"

	alertRepoImp "agromonitor/pkg/alert/repositoryImp"
	alertSvc "agromonitor/pkg/alert/service"
	alertSvcImp "agromonitor/pkg/alert/serviceImp"
	catRepo "agromonitor/pkg/catalog/repository"
	catRepoImp "agromonitor/pkg/catalog/repositoryImp"
	catSvcImp "agromonitor/pkg/catalog/serviceImp"
	fertRepoImp "agromonitor/pkg/fertilization/repositoryImp"
	fertSvc "agromonitor/pkg/fertilization/service"
	fertSvcImp "agromonitor/pkg/fertilization/serviceImp"
	measRepoImp "agromonitor/pkg/measure/repositoryImp"
	measSvc "agromonitor/pkg/measure/service"
	measSvcImp "agromonitor/pkg/measure/serviceImp"
	summarySvc "agromonitor/pkg/summary/service"
	summarySvcImp "agromonitor/pkg/summary/serviceImp"
	verifySvc "agromonitor/pkg/verify/service"
	verifySvcImp "agromonitor/pkg/verify/serviceImp"
)

// app holds the wired services shared by every command.
type app struct {
	db        *gorm.DB
	registry  *rules.Registry
	publisher notify.Publisher

	catalog catRepo.CatalogRepository

	measure  measSvc.MeasureService
	fert     fertSvc.Service
	alerts   alertSvc.AlertService
	verifier verifySvc.Verifier
	summary  summarySvc.SummaryService
}

func newApp(cfg config.AppConfig) (*app, error) {
	log := logger.WithComponent("main")

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	th, err := rules.LoadThresholds(cfg.ThresholdsFile)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	reg, err := rules.NewRegistry(th)
	if err != nil {
		return nil, fmt.Errorf("build rule registry: %w", err)
	}

	var pub notify.Publisher = notify.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf("kafka publisher: %w", err)
		}
		pub = kp
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("alert events go to kafka")
	}

	cat := catRepoImp.New(db)
	catSvc := catSvcImp.New(cat, cfg.NameCacheTTL)
	mr := measRepoImp.New(db)
	ar := alertRepoImp.New(db)
	alerts := alertSvcImp.New(ar, pub)

	return &app{
		db:        db,
		registry:  reg,
		publisher: pub,
		catalog:   cat,
		measure:   measSvcImp.NewMeasureService(mr, cat),
		fert:      fertSvcImp.New(fertRepoImp.New(db), cat),
		alerts:    alerts,
		verifier:  verifySvcImp.New(reg, mr, catSvc, alerts),
		summary:   summarySvcImp.New(ar, catSvc, mr),
	}, nil
}

func (a *app) close() {
	log := logger.WithComponent("main")
	if err := a.publisher.Close(); err != nil {
		log.Warn().Err(err).Msg("close publisher")
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
