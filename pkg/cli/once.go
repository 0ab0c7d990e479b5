package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/jaylaelike/scintpipe/pkg/cli/config"
	"github.com/jaylaelike/scintpipe/pkg/usecase"
)

func cmdOnce() *cli.Command {
	var (
		pipelineCfg config.Pipeline
		analysisCfg config.Analysis
		githubCfg   config.GitHub
		snapshotCfg config.Snapshot
	)

	flags := pipelineCfg.Flags()
	flags = append(flags, analysisCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, snapshotCfg.Flags()...)

	return &cli.Command{
		Name:  "once",
		Usage: "Run a single cycle and exit",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := pipelineCfg.LoadFile(); err != nil {
				return err
			}

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

			result, err := cycleUC.RunCycle(ctx)
			if err != nil {
				color.New(color.FgRed).Printf("✗ cycle failed: %v\n", err)
				return err
			}

			color.New(color.FgGreen).Printf("✓ %d records uploaded in %s\n",
				result.RecordCount, result.Duration.Round(time.Millisecond))
			fmt.Printf("  output:  %s\n", result.OutputPath)
			fmt.Printf("  commit:  %s\n", result.CommitURL)
			if result.SnapshotPath != "" {
				fmt.Printf("  archive: %s\n", result.SnapshotPath)
			}
			return nil
		},
	}
}
