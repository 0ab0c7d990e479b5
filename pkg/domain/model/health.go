package model

// HealthStatus is the liveness payload of the status server
type HealthStatus struct {
	Status  string `json:"status"`  // "healthy" while the process serves requests
	Service string `json:"service"`
	Version string `json:"version"`
}
