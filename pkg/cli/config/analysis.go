package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jaylaelike/scintpipe/pkg/infra/analysis"
)

// Analysis holds analysis API client configuration
type Analysis struct {
	URL        string
	Timeout    time.Duration
	RetryCount int
}

// Flags returns CLI flags for analysis API configuration
func (c *Analysis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "analysis-url",
			Usage:       "Analysis API endpoint URL",
			Value:       "http://127.0.0.1:8000/analyze/",
			Destination: &c.URL,
			Sources:     cli.EnvVars("SCINTPIPE_ANALYSIS_URL"),
		},
		&cli.DurationFlag{
			Name:        "analysis-timeout",
			Usage:       "Per-request timeout for the analysis API",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("SCINTPIPE_ANALYSIS_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        "analysis-retry",
			Usage:       "Transport-level retry count for the analysis API",
			Value:       3,
			Destination: &c.RetryCount,
			Sources:     cli.EnvVars("SCINTPIPE_ANALYSIS_RETRY"),
		},
	}
}

// NewClient builds the analysis API client from this configuration
func (c *Analysis) NewClient() *analysis.Client {
	return analysis.NewClient(c.URL,
		analysis.WithTimeout(c.Timeout),
		analysis.WithRetryCount(c.RetryCount),
	)
}
