package config

import (
	"github.com/urfave/cli/v3"

	"github.com/jaylaelike/scintpipe/pkg/domain/interfaces"
	githubinfra "github.com/jaylaelike/scintpipe/pkg/infra/github"
)

// GitHub holds upload target configuration
type GitHub struct {
	Token          string
	Owner          string
	Repo           string
	Branch         string
	Path           string
	CommitterName  string
	CommitterEmail string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("SCINTPIPE_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-owner",
			Usage:       "Owner of the target repository",
			Required:    true,
			Destination: &c.Owner,
			Sources:     cli.EnvVars("SCINTPIPE_GITHUB_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Name of the target repository",
			Required:    true,
			Destination: &c.Repo,
			Sources:     cli.EnvVars("SCINTPIPE_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-branch",
			Usage:       "Target branch (repository default when empty)",
			Destination: &c.Branch,
			Sources:     cli.EnvVars("SCINTPIPE_GITHUB_BRANCH"),
		},
		&cli.StringFlag{
			Name:        "github-path",
			Usage:       "Path of the uploaded file inside the repository",
			Value:       "data.csv",
			Destination: &c.Path,
			Sources:     cli.EnvVars("SCINTPIPE_GITHUB_PATH"),
		},
		&cli.StringFlag{
			Name:        "committer-name",
			Usage:       "Committer name for automated commits",
			Value:       githubinfra.DefaultCommitterName,
			Destination: &c.CommitterName,
			Sources:     cli.EnvVars("SCINTPIPE_COMMITTER_NAME"),
		},
		&cli.StringFlag{
			Name:        "committer-email",
			Usage:       "Committer email for automated commits",
			Value:       githubinfra.DefaultCommitterEmail,
			Destination: &c.CommitterEmail,
			Sources:     cli.EnvVars("SCINTPIPE_COMMITTER_EMAIL"),
		},
	}
}

// NewUploader builds the contents-API uploader from this configuration
func (c *GitHub) NewUploader() (interfaces.Uploader, error) {
	opts := []githubinfra.Option{
		githubinfra.WithCommitter(c.CommitterName, c.CommitterEmail),
	}
	if c.Branch != "" {
		opts = append(opts, githubinfra.WithBranch(c.Branch))
	}
	return githubinfra.NewUploader(c.Token, c.Owner, c.Repo, opts...)
}
