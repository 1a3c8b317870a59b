package dto

type AdviceInput struct {
	Text string `json:"text"`
}

type AdviceResponse struct {
	Vector     []float64 `json:"vector"`
	Dimensions int       `json:"dimensions"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
