package models

// Response is the uniform JSON envelope of every API reply.
// swagger:model Response
type Response struct {
	Success bool `json:"success"`

	Data any `json:"data,omitempty"`

	// example: Route not found
	Error string `json:"error,omitempty"`

	Message string `json:"message,omitempty"`

	// Validation failures, one entry per broken rule
	Details []string `json:"details,omitempty"`

	Timestamp string `json:"timestamp,omitempty"`
}
