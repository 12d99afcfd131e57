package models

// GenerationRequest carries the parameters of a single question-generation call.
// Both fields are free-form and interpolated into the prompt as given.
type GenerationRequest struct {
	Category string `json:"category" form:"category"`
	Language string `json:"lang" form:"lang"`
}

// GenerationResult is the successful outcome of a generation call
type GenerationResult struct {
	Question string `json:"question"`
}

// ErrorResponse is the JSON body returned on failures
type ErrorResponse struct {
	Error string `json:"error"`
}
