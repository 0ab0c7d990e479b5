package types

// Version is the application version. Overridden at build time:
//
//	go build -ldflags "-X github.com/jaylaelike/scintpipe/pkg/domain/types.Version=v1.2.3"
var Version = "0.1.0"

// ServiceName identifies this service in health responses and logs
const ServiceName = "scintpipe"
