package dto

type ErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type HealthResponse struct {
	Healthy   bool   `json:"healthy"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
