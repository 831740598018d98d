package gen

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"hrbridge/internal/mapping"
)

// IntegrationRequest is the input of one compile.
type IntegrationRequest struct {
	// Name labels the integration. Defaults to the compiler's configured name.
	Name                string            `json:"name,omitempty" yaml:"name,omitempty"`
	CustomerEmail       string            `json:"customerEmail" yaml:"customerEmail"`
	DestinationEndpoint string            `json:"destinationEndpoint" yaml:"destinationEndpoint"`
	Mappings            []mapping.Mapping `json:"mappings" yaml:"mappings"`
	SourcePayload       map[string]any    `json:"sourcePayload" yaml:"sourcePayload"`
}

// ValidationError reports a request field that prevents compilation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the required top-level fields and the shape of every
// mapping. It does not check target collisions, which depend on policy.
func (r *IntegrationRequest) Validate() error {
	email := strings.TrimSpace(r.CustomerEmail)
	if email == "" {
		return invalid("customerEmail", "is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("customerEmail", "%q is not a valid email address", r.CustomerEmail)
	}

	endpoint := strings.TrimSpace(r.DestinationEndpoint)
	if endpoint == "" {
		return invalid("destinationEndpoint", "is required")
	}

	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("destinationEndpoint", "%q is not an http(s) URL", r.DestinationEndpoint)
	}

	if r.SourcePayload == nil {
		return invalid("sourcePayload", "is required")
	}

	for i, m := range r.Mappings {
		if _, err := mapping.ParsePath(m.SourceField.Path); err != nil {
			return invalid(fmt.Sprintf("mappings[%d].sourceField.path", i), "%v", err)
		}

		if _, err := mapping.ParsePath(m.TargetPath); err != nil {
			return invalid(fmt.Sprintf("mappings[%d].targetPath", i), "%v", err)
		}
	}

	return nil
}
