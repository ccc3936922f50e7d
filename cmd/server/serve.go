package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"agromonitor/config"
	"agromonitor/pkg/logger"
	"agromonitor/pkg/scheduler"
	"agromonitor/router"

	alertCtrlImp "agromonitor/pkg/alert/controllerImp"
	catCtrlImp "agromonitor/pkg/catalog/controllerImp"
	fertCtrlImp "agromonitor/pkg/fertilization/controllerImp"
	healthCtrlImp "agromonitor/pkg/health/controllerImp"
	measCtrlImp "agromonitor/pkg/measure/controllerImp"
	summaryCtrlImp "agromonitor/pkg/summary/controllerImp"
	verifyCtrlImp "agromonitor/pkg/verify/controllerImp"
)

func serveCommand(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the verification poller",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *cfg)
		},
	}
}

func serve(parent context.Context, cfg config.AppConfig) error {
	log := logger.WithComponent("main")

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	e := echo.New()
	e.HideBanner = true
	router.New(e, cfg.FirmScope, router.Controllers{
		Catalog:       catCtrlImp.NewCatalogCtrl(a.catalog),
		Measure:       measCtrlImp.NewMeasureCtrl(a.measure),
		Fertilization: fertCtrlImp.New(a.fert),
		Alert:         alertCtrlImp.NewAlertCtrl(a.alerts),
		Verify:        verifyCtrlImp.NewVerifyCtrl(a.verifier, a.registry),
		Summary:       summaryCtrlImp.NewSummaryCtrl(a.summary),
		Health:        healthCtrlImp.NewHealthCtrl(a.db, a.registry),
	})

	var poller *scheduler.Poller
	if cfg.PollEnabled {
		poller = scheduler.NewPoller(scheduler.Config{
			Verifier: a.verifier,
			Firms:    a.catalog,
			Interval: cfg.PollInterval,
		})
		poller.Start()
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown requested")
	case err = <-errCh:
	}

	if poller != nil {
		poller.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := e.Shutdown(shutdownCtx); serr != nil {
		log.Warn().Err(serr).Msg("http shutdown")
	}
	return err
}
