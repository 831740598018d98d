package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrbridge/internal/mapping"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *IntegrationRequest)
		field  string
	}{
		{"valid", func(*IntegrationRequest) {}, ""},
		{"missing email", func(r *IntegrationRequest) { r.CustomerEmail = " " }, "customerEmail"},
		{"bad email", func(r *IntegrationRequest) { r.CustomerEmail = "not-an-email" }, "customerEmail"},
		{"display name email", func(r *IntegrationRequest) { r.CustomerEmail = "Ops <ops@acme.com>" }, "customerEmail"},
		{"missing endpoint", func(r *IntegrationRequest) { r.DestinationEndpoint = "" }, "destinationEndpoint"},
		{"ftp endpoint", func(r *IntegrationRequest) { r.DestinationEndpoint = "ftp://files.acme.com" }, "destinationEndpoint"},
		{"hostless endpoint", func(r *IntegrationRequest) { r.DestinationEndpoint = "https://" }, "destinationEndpoint"},
		{"missing payload", func(r *IntegrationRequest) { r.SourcePayload = nil }, "sourcePayload"},
		{"empty mappings", func(r *IntegrationRequest) { r.Mappings = nil }, ""},
		{
			"empty target",
			func(r *IntegrationRequest) { r.Mappings = []mapping.Mapping{direct("employee.email", "")} },
			"mappings[0].targetPath",
		},
		{
			"bad source",
			func(r *IntegrationRequest) { r.Mappings = []mapping.Mapping{direct("employee..email", "x")} },
			"mappings[0].sourceField.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := scenario()
			tt.modify(&req)

			err := req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
