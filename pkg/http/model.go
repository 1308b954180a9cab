package http

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Error   string            `json:"error" example:"missing-configuration"`
	Message string            `json:"message,omitempty" example:"missing TWELVE_DATA_API_KEY"`
	Details []ValidationError `json:"details,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"tickers"`
	Message string                 `json:"message,omitempty" example:"tickers is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
