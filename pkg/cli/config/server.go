package config

import "github.com/urfave/cli/v3"

// Server holds status server configuration
type Server struct {
	Addr string
}

// Flags returns CLI flags for status server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Status server address",
			Value:       "localhost:8211",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("SCINTPIPE_ADDR"),
		},
	}
}
