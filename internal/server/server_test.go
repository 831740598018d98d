package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrbridge/internal/gen"
	"hrbridge/internal/patterns"
	"hrbridge/internal/plan"
	"hrbridge/internal/store"
)

const catalog = `
sources:
  senior:
    schema:
      funcionario:
        nome: Maria
        email: maria@acme.com
    semanticRules:
      synonymGroups:
        name: [nome, fullName]
destinations:
  workday:
    schema:
      worker:
        fullName: ""
        email: ""
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cat, err := patterns.Parse([]byte(catalog))
	require.NoError(t, err)

	hist, err := store.Open(store.MemoryPath)
	require.NoError(t, err)

	handler, err := New(Config{
		BasePath:      "/v1",
		MaxConcurrent: 2,
		Resolver:      plan.NewResolver(nil, nil, nil, nil),
		Compiler:      gen.NewCompiler(gen.DefaultConfig(), nil, nil),
		Patterns:      cat,
		Store:         hist,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		hist.Close()
	})

	return srv
}

func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}

	return resp.StatusCode, out
}

func compileBody() map[string]any {
	return map[string]any{
		"customerEmail":       "ops@acme.com",
		"destinationEndpoint": "https://hr.example.com/people",
		"sourcePayload": map[string]any{
			"employee": map[string]any{"cpf": "123.456.789-00"},
		},
		"mappings": []any{
			map[string]any{
				"sourceField":    map[string]any{"path": "employee.cpf"},
				"targetPath":     "person.document",
				"transformation": map[string]any{"type": "format_document", "pattern": "cpf"},
			},
		},
	}
}

func errorOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error envelope: %v", body)

	return e
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/v1/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestSuggest_InlineSchemas(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/v1/mappings/suggest", map[string]any{
		"sourceSchema":      map[string]any{"employee": map[string]any{"email": "a@b.com", "nome": "Maria"}},
		"destinationSchema": map[string]any{"person": map[string]any{"email": "", "name": ""}},
		"semanticRules": map[string]any{
			"synonymGroups": map[string]any{"name": []string{"nome", "name"}},
		},
	})
	require.Equal(t, http.StatusOK, status, body)

	assert.Equal(t, "rules", body["source"])
	assert.Len(t, body["mappings"], 2)
	assert.InDelta(t, 1.0, body["coverage"], 1e-9)
}

func TestSuggest_Catalog(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/v1/mappings/suggest", map[string]any{
		"sourceId":      "senior",
		"destinationId": "workday",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["mappings"], 2)

	status, body = doJSON(t, http.MethodPost, srv.URL+"/v1/mappings/suggest", map[string]any{
		"sourceId":      "nope",
		"destinationId": "workday",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "unknown_source", errorOf(t, body)["code"])
}

func TestSuggest_MissingSource(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/v1/mappings/suggest", map[string]any{
		"destinationId": "workday",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errorOf(t, body)["message"], "sourceSchema")
}

func TestPreview(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/v1/mappings/preview", map[string]any{
		"value": "maría  silva",
		"transformations": []any{
			map[string]any{"type": "normalize", "operation": "remove_accents"},
			map[string]any{"type": "normalize", "operation": "upper_case"},
		},
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "maría  silva", body["input"])
	assert.Equal(t, "MARIA  SILVA", body["output"])
}

func TestCompile_SaveAndFetch(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/v1/integrations/compile?save=true", compileBody())
	require.Equal(t, http.StatusOK, status, body)

	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	artifact := body["artifact"].(map[string]any)
	assert.Equal(t, map[string]any{"person": map[string]any{"document": "${cpf_1}"}}, artifact["payload"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/v1/integrations/"+id, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "ops@acme.com", body["customerEmail"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/v1/integrations", nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["integrations"], 1)

	status, body = doJSON(t, http.MethodGet, srv.URL+"/v1/integrations/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errorOf(t, body)["code"])
}

func TestCompile_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	req := compileBody()
	req["customerEmail"] = ""

	status, body := doJSON(t, http.MethodPost, srv.URL+"/v1/integrations/compile", req)
	assert.Equal(t, http.StatusBadRequest, status)

	e := errorOf(t, body)
	assert.Equal(t, "invalid_request", e["code"])
	assert.Equal(t, "customerEmail", e["details"].(map[string]any)["field"])

	req = compileBody()
	delete(req, "destinationEndpoint")

	status, body = doJSON(t, http.MethodPost, srv.URL+"/v1/integrations/compile", req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errorOf(t, body)["details"].(map[string]any)["errors"].([]any)[0], "destinationEndpoint")
}

func TestNew_RequiresComponents(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
