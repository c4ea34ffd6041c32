package models

// HealthResponse is the JSON body returned by the liveness endpoint.
type HealthResponse struct {
	// Status is "ok" whenever the process is able to answer at all.
	Status string `json:"status"`

	// Version is the application version reported by the build.
	Version string `json:"version"`
}
