package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/jaylaelike/scintpipe/pkg/cli/config"
	controller "github.com/jaylaelike/scintpipe/pkg/controller/http"
	"github.com/jaylaelike/scintpipe/pkg/controller/scheduler"
	"github.com/jaylaelike/scintpipe/pkg/infra/notify"
	"github.com/jaylaelike/scintpipe/pkg/usecase"
)

func cmdRun() *cli.Command {
	var (
		pipelineCfg config.Pipeline
		analysisCfg config.Analysis
		githubCfg   config.GitHub
		snapshotCfg config.Snapshot
		slackCfg    config.Slack
		serverCfg   config.Server
	)

	flags := pipelineCfg.Flags()
	flags = append(flags, analysisCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, snapshotCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, serverCfg.Flags()...)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Start the scheduled pipeline loop",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := pipelineCfg.LoadFile(); err != nil {
				return err
			}

			logger.Info("Starting scintpipe",
				slog.String("data_dir", pipelineCfg.DataDir),
				slog.String("analysis_url", analysisCfg.URL),
				slog.String("repo", githubCfg.Owner+"/"+githubCfg.Repo),
				slog.String("interval", pipelineCfg.Interval.String()),
			)

			uploader, err := githubCfg.NewUploader()
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub uploader")
			}

			store, err := snapshotCfg.NewStore(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to create snapshot store")
			}
			if store != nil {
				defer store.Close()
			}

			var cycleOpts []usecase.Option
			if store != nil {
				cycleOpts = append(cycleOpts, usecase.WithSnapshotStore(store, snapshotCfg.Retention))
			}
			cycleUC := usecase.NewCycle(
				pipelineCfg.InputSet(),
				pipelineCfg.OutputPath(),
				githubCfg.Path,
				analysisCfg.NewClient(),
				uploader,
				cycleOpts...,
			)

			schedOpts := []scheduler.Option{
				scheduler.WithErrorHandler(func(err error) {
					if sentry.CurrentHub().Client() != nil {
						sentry.CaptureException(err)
					}
				}),
			}
			if slackCfg.WebhookURL != "" {
				schedOpts = append(schedOpts, scheduler.WithNotifier(notify.NewSlackNotifier(slackCfg.WebhookURL)))
			}
			sched := scheduler.New(cycleUC, pipelineCfg.Interval, schedOpts...)

			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			go func() {
				if err := sched.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("Scheduler stopped with error", slog.Any("error", err))
				}
			}()

			server, err := controller.NewServer(ctx, sched, controller.WithAddr(serverCfg.Addr))
			if err != nil {
				return goerr.Wrap(err, "failed to create status server")
			}

			go func() {
				logger.Info("Status server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Status server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown status server gracefully")
			}

			if sentry.CurrentHub().Client() != nil {
				sentry.Flush(2 * time.Second)
			}

			logger.Info("Shutdown complete")
			return nil
		},
	}
}
