package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the status server
type ServerConfig struct {
	Addr   string // host:port to listen on
	APIKey string // when set, required on /api/v1 routes

	// LogRequests writes one slog record per request. Leave it off while
	// something else owns the terminal.
	LogRequests bool
}

// HealthResponse is returned by /api/v1/health
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Running int    `json:"running_tasks"`
}
