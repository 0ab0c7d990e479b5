package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/jaylaelike/scintpipe/pkg/domain/model"
)

// Pipeline holds the cycle's file and schedule configuration
type Pipeline struct {
	ConfigFile string
	DataDir    string
	S4CFile    string
	LatFile    string
	LonFile    string
	OutputFile string
	Interval   time.Duration
}

// fileConfig is the TOML layout of the optional config file. Only the
// keys present in the file override flag values.
type fileConfig struct {
	DataDir    string `toml:"data_dir"`
	S4CFile    string `toml:"s4c_file"`
	LatFile    string `toml:"lat_file"`
	LonFile    string `toml:"lon_file"`
	OutputFile string `toml:"output_file"`
	Interval   string `toml:"interval"`
}

// Flags returns CLI flags for pipeline configuration
func (c *Pipeline) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Optional TOML file with pipeline settings",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("SCINTPIPE_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory containing the receiver CSV files",
			Value:       "./data",
			Destination: &c.DataDir,
			Sources:     cli.EnvVars("SCINTPIPE_DATA_DIR"),
		},
		&cli.StringFlag{
			Name:        "s4c-file",
			Usage:       "File name of the scintillation index input",
			Value:       "SN560_S4C_last15min.csv",
			Destination: &c.S4CFile,
			Sources:     cli.EnvVars("SCINTPIPE_S4C_FILE"),
		},
		&cli.StringFlag{
			Name:        "lat-file",
			Usage:       "File name of the latitude input",
			Value:       "SN560_Lat_last15min.csv",
			Destination: &c.LatFile,
			Sources:     cli.EnvVars("SCINTPIPE_LAT_FILE"),
		},
		&cli.StringFlag{
			Name:        "lon-file",
			Usage:       "File name of the longitude input",
			Value:       "SN560_Lon_last15min.csv",
			Destination: &c.LonFile,
			Sources:     cli.EnvVars("SCINTPIPE_LON_FILE"),
		},
		&cli.StringFlag{
			Name:        "output-file",
			Usage:       "File name of the output CSV, written into the data directory",
			Value:       "data.csv",
			Destination: &c.OutputFile,
			Sources:     cli.EnvVars("SCINTPIPE_OUTPUT_FILE"),
		},
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Time between cycles",
			Value:       15 * time.Minute,
			Destination: &c.Interval,
			Sources:     cli.EnvVars("SCINTPIPE_INTERVAL"),
		},
	}
}

// LoadFile applies the optional TOML config file on top of the flag
// values. Keys absent from the file keep their current values.
func (c *Pipeline) LoadFile() error {
	if c.ConfigFile == "" {
		return nil
	}

	raw, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", c.ConfigFile))
	}

	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.ConfigFile))
	}

	if fc.DataDir != "" {
		c.DataDir = fc.DataDir
	}
	if fc.S4CFile != "" {
		c.S4CFile = fc.S4CFile
	}
	if fc.LatFile != "" {
		c.LatFile = fc.LatFile
	}
	if fc.LonFile != "" {
		c.LonFile = fc.LonFile
	}
	if fc.OutputFile != "" {
		c.OutputFile = fc.OutputFile
	}
	if fc.Interval != "" {
		interval, err := time.ParseDuration(fc.Interval)
		if err != nil {
			return goerr.Wrap(err, "invalid interval in config file", goerr.V("interval", fc.Interval))
		}
		c.Interval = interval
	}
	return nil
}

// InputSet builds the input file set for one cycle
func (c *Pipeline) InputSet() model.InputFileSet {
	return model.NewInputFileSet(c.DataDir, c.S4CFile, c.LatFile, c.LonFile)
}

// OutputPath is the local path of the output CSV
func (c *Pipeline) OutputPath() string {
	return filepath.Join(c.DataDir, c.OutputFile)
}
