package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"StrataScan/internal/cache"
	"StrataScan/internal/notifier"
	"StrataScan/internal/scheduler"
	"StrataScan/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with scheduled analysis refreshes",
	RunE: func(_ *cobra.Command, _ []string) error {
		application, err := buildApp()
		if err != nil {
			return err
		}
		defer application.recorder.Close()
		cfg, log := application.cfg, application.log

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store := cache.NewRunStore()

		var notify notifier.Notifier = notifier.NoopNotifier{}
		if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
			notify = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, log)
		}

		sched := scheduler.New(ctx, application.analyzer, store, application.recorder, notify, log)
		if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if cfg.Schedule.RunOnStart {
			go sched.RunNow()
		}

		srv := server.New(cfg.Server.Addr, cfg.Server.Mode,
			application.analyzer, application.macro, store, application.recorder, log)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	},
}
