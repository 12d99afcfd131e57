package services

import (
	"fmt"

	"github.com/Conceptual-Machines/cogito-api/internal/llm"
)

// ConfigurationError reports that the selected provider has no credential.
// It is returned before any network call is made.
type ConfigurationError struct {
	Provider string // display name, e.g. "OpenAI"
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s API key not configured", e.Provider)
}

func (e *ConfigurationError) Unwrap() error {
	return llm.ErrMissingAPIKey
}
