package http

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error   string      `json:"error" example:"Missing required parameters"`
	Code    string      `json:"code" example:"ERR_BAD_REQUEST"`
	Details interface{} `json:"details,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"year"`
	Message string                 `json:"message,omitempty" example:"year is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type AckResponse struct {
	Received bool `json:"received"`
}
