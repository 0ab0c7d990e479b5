package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/jaylaelike/scintpipe/pkg/cli/config"
)

// cmdCheck verifies the pipeline prerequisites without running a
// cycle: input files on disk, analysis API reachability, and access
// to the upload repository.
func cmdCheck() *cli.Command {
	var (
		pipelineCfg config.Pipeline
		analysisCfg config.Analysis
		githubCfg   config.GitHub
	)

	flags := pipelineCfg.Flags()
	flags = append(flags, analysisCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)

	return &cli.Command{
		Name:  "check",
		Usage: "Verify input files, analysis API, and repository access",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := pipelineCfg.LoadFile(); err != nil {
				return err
			}

			ok := color.New(color.FgGreen)
			fail := color.New(color.FgRed)
			failed := 0

			if missing := pipelineCfg.InputSet().Missing(); len(missing) > 0 {
				for _, path := range missing {
					fail.Printf("FAIL missing input file: %s\n", path)
				}
				failed++
			} else {
				ok.Println("OK   input files present")
			}

			if err := analysisCfg.NewClient().Ping(ctx); err != nil {
				fail.Printf("FAIL analysis API: %v\n", err)
				failed++
			} else {
				ok.Printf("OK   analysis API reachable: %s\n", analysisCfg.URL)
			}

			uploader, err := githubCfg.NewUploader()
			if err != nil {
				fail.Printf("FAIL GitHub configuration: %v\n", err)
				failed++
			} else if err := uploader.CheckAccess(ctx); err != nil {
				fail.Printf("FAIL GitHub repository: %v\n", err)
				failed++
			} else {
				ok.Printf("OK   GitHub repository accessible: %s/%s\n", githubCfg.Owner, githubCfg.Repo)
			}

			if failed > 0 {
				return goerr.New(fmt.Sprintf("%d prerequisite check(s) failed", failed))
			}
			return nil
		},
	}
}
