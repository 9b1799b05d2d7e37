package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/justiceplatform/courtnotify/internal/api"
	"github.com/justiceplatform/courtnotify/internal/calendar"
	"github.com/justiceplatform/courtnotify/internal/commandbus"
	"github.com/justiceplatform/courtnotify/internal/config"
	"github.com/justiceplatform/courtnotify/internal/logger"
	"github.com/justiceplatform/courtnotify/internal/notify"
	"github.com/justiceplatform/courtnotify/internal/remote"
	"github.com/justiceplatform/courtnotify/internal/scheduler"
	"github.com/justiceplatform/courtnotify/internal/server"
	"github.com/justiceplatform/courtnotify/internal/service"
	"github.com/justiceplatform/courtnotify/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP API server for the court notification service.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP server port (overrides PORT env var)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	log, err := logger.New(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := storage.NewSQLiteDB(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening dispatch database: %w", err)
	}
	defer func() { _ = db.Close() }()
	dispatchStore := storage.NewSQLiteDispatchStore(db)

	holidaySource, err := buildHolidaySource(cfg)
	if err != nil {
		return err
	}
	holidayCache := calendar.NewCachingSource(holidaySource)

	refresher, err := scheduler.NewHolidayRefresher(holidayCache, cfg.Jurisdiction, log)
	if err != nil {
		return err
	}
	if err := refresher.Start(ctx); err != nil {
		return fmt.Errorf("starting holiday refresher: %w", err)
	}
	defer func() { _ = refresher.Stop() }()

	caseDoc, err := remote.NewCaseDocumentClient(cfg.CaseDocumentAPIURL)
	if err != nil {
		return err
	}
	apiNotify, err := remote.NewNotificationAPIClient(cfg.NotificationAPIURL)
	if err != nil {
		return err
	}
	fileStore, err := remote.NewFileStoreClient(cfg.FileStoreURL)
	if err != nil {
		return err
	}
	prosecutors, err := remote.NewProsecutorClient(cfg.RefDataAPIURL)
	if err != nil {
		return err
	}

	bus := commandbus.New(3)
	defer bus.Close()

	alerter := notify.NewAlerter(cfg.AlertSettings(), log)
	bus.Subscribe(alerter.Handle)
	bus.Subscribe(func(c commandbus.Command) {
		log.Info("outbound command emitted",
			"command_id", c.ID, "type", c.Type, "correlation_id", c.CorrelationID)
	})

	dispatcher := notify.NewDispatcher(bus, fileStore, caseDoc, apiNotify, fileStore, log)

	notificationSvc := service.NewNotificationService(service.Config{
		Holidays:     holidayCache,
		Jurisdiction: cfg.Jurisdiction,
		WorkingDays:  cfg.BoxworkWorkingDays,
		Dispatcher:   dispatcher,
		Store:        dispatchStore,
		Logger:       log,
	})

	summonsSvc := service.NewSummonsService(prosecutors, log)

	apiSrv := api.New(notificationSvc, summonsSvc, log)
	srv := server.New(apiSrv, cfg.Port, log)

	fmt.Fprintf(os.Stderr, "courtnotify listening on http://localhost:%d\n", cfg.Port)
	log.Info("server starting", "port", cfg.Port, "jurisdiction", cfg.Jurisdiction)

	return srv.Run(ctx)
}

// buildHolidaySource picks the holiday backend: a local YAML fixture when
// HOLIDAY_FILE is set, otherwise the reference-data HTTP service.
func buildHolidaySource(cfg *config.AppConfig) (calendar.HolidaySource, error) {
	if cfg.HolidayFile != "" {
		return calendar.NewFileSource(cfg.HolidayFile)
	}
	return calendar.NewClient(cfg.HolidayAPIURL)
}
