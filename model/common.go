package model

// HealthResponse is the fixed liveness payload.
type HealthResponse struct {
	OK bool `json:"ok" example:"true"`
}

// ErrorResponse is returned by the gin layer (rate limiting, panics).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Retry   int    `json:"retry,omitempty"`
}
